package property

// Blueprint metadata rows. Each name is bound to the one declared shape it
// has in editor graph data; a property with the same name and any other
// shape is decoded by its declared type.

var (
	metaInts = []string{
		"NodePosX", "NodePosY", "NodeWidth", "NodeHeight", "ErrorType",
		"BlueprintSystemVersion",
	}
	metaBools = []string{
		"bCommentBubbleVisible", "bCommentBubblePinned", "bCommentBubbleMakeVisible",
		"bHasCompilerMessage", "bSelfContext", "bWasDeprecated", "bOverrideFunction",
		"bInternalEvent", "bIsPureFunc", "bIsConstFunc", "bDefaultsToPureFunc",
		"bConsumeInput", "bExecuteWhenPaused", "bOverrideParentBinding",
		"bIsParentComponentNative",
	}
	metaNames = []string{
		"MemberName", "CustomFunctionName", "InputActionName", "DelegatePropertyName",
		"ComponentPropertyName", "InternalVariableName", "ParentComponentOrVariableName",
	}
	metaObjects = []string{
		"MemberParent", "DelegateOwnerClass", "ComponentTemplate", "ComponentClass",
		"Schema", "ParentClass", "GeneratedClass", "SkeletonGeneratedClass",
		"SimpleConstructionScript", "DefaultSceneRootNode", "TargetType",
	}
	metaStrings = []string{"NodeComment", "ErrorMsg", "MemberScope"}
	metaGuids   = []string{"NodeGuid", "MemberGuid", "GraphGuid", "BlueprintGuid", "VariableGuid"}
	metaEnums   = []string{"EnabledState", "AdvancedPinDisplay", "InputKeyEvent", "BlueprintType"}

	metaObjectArrays = []string{
		"ComponentTemplates", "Timelines", "UbergraphPages", "FunctionGraphs",
		"DelegateSignatureGraphs", "MacroGraphs", "Nodes", "RootNodes", "AllNodes",
	}

	// property name -> nested struct it references
	metaRefs = map[string]string{
		"VariableReference": "MemberReference",
		"FunctionReference": "MemberReference",
		"EventReference":    "MemberReference",
		"DelegateReference": "MemberReference",
		"InputKey":          "Key",
		"InputChord":        "InputChord",
	}
	// property name -> element struct of the array
	metaStructArrays = map[string]string{
		"InputKeyDelegateBindings":    "BlueprintInputKeyDelegateBinding",
		"InputActionDelegateBindings": "BlueprintInputActionDelegateBinding",
		"ComponentDelegateBindings":   "BlueprintComponentDelegateBinding",
		"NewVariables":                "BPVariableDescription",
	}
)

func registerMetadata(r *Registry) {
	for _, n := range metaInts {
		r.RegisterName(n, Row{Type: "IntProperty", Sizes: []int64{4}, Decoder: fromElement(int32Element)})
	}
	for _, n := range metaBools {
		r.RegisterName(n, Row{Type: TypeBool, Sizes: []int64{0}, Decoder: Func(decodeBool)})
	}
	for _, n := range metaNames {
		r.RegisterName(n, Row{Type: "NameProperty", Sizes: []int64{8}, Decoder: fromElement(nameElement)})
	}
	for _, n := range metaObjects {
		r.RegisterName(n, Row{Type: "ObjectProperty", Sizes: []int64{4}, Decoder: fromElement(objectElement)})
	}
	for _, n := range metaStrings {
		r.RegisterName(n, Row{Type: "StrProperty", Decoder: fromElement(strElement)})
	}
	for _, n := range metaGuids {
		r.RegisterName(n, Row{Type: TypeStruct, Struct: "Guid", Sizes: []int64{16}, Decoder: guidStruct{upper: true}})
	}
	for _, n := range metaEnums {
		r.RegisterName(n, Row{Type: TypeByte, Sizes: []int64{1, 8}, Decoder: Func(decodeByte)})
	}
	for _, n := range metaObjectArrays {
		r.RegisterName(n, Row{Type: TypeArray, Struct: "ObjectProperty", Decoder: Func(decodeArray)})
	}
	for n, s := range metaRefs {
		r.RegisterName(n, Row{Type: TypeStruct, Struct: s, Decoder: taggedStruct{}})
	}
	for n, s := range metaStructArrays {
		r.RegisterName(n, Row{Type: TypeArray, Struct: TypeStruct, Decoder: structArrayOf(s)})
	}
}

// structArrayOf decodes an array whose elements are the nested-tag struct
// want, whether or not the registry knows that struct.
func structArrayOf(want string) Func {
	return func(ctx *Context, tag *Tag) ([]Value, error) {
		count, err := readCount(ctx, tag)
		if err != nil {
			return nil, err
		}
		return decodeStructArray(ctx, tag, count, taggedStruct{}, want)
	}
}
