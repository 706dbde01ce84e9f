package analyze

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/duyhunghd6/polycode-cli/internal/types"
	"github.com/duyhunghd6/polycode-cli/internal/util"
)

const maxTestRender = 120

// unknownName marks expressions that resolve to neither a bare name nor a
// member access chain.
const unknownName = "unknown"

type collector struct {
	src   []byte
	stats types.Statistics
	elems types.Elements
}

// walk traverses the tree once in document order, counting node kinds into
// Statistics and extracting descriptors into Elements.
func walk(root *sitter.Node, src []byte) (*types.Statistics, *types.Elements) {
	c := &collector{
		src: src,
		// non-nil so the persisted JSON carries empty lists, not nulls
		elems: types.Elements{
			Functions:    []types.FunctionElement{},
			Classes:      []types.ClassElement{},
			Imports:      []types.ImportElement{},
			Variables:    []types.VariableElement{},
			Calls:        []types.CallElement{},
			Loops:        []types.LoopElement{},
			Conditionals: []types.ConditionalElement{},
		},
	}
	c.visit(root)
	return &c.stats, &c.elems
}

func (c *collector) visit(n *sitter.Node) {
	switch n.Type() {
	case "function_definition":
		c.addFunction(n)
	case "class_definition":
		c.addClass(n)
	case "import_statement":
		c.addImport(n)
	case "import_from_statement":
		c.addFromImport(n)
	case "assignment":
		c.addAssignment(n)
	case "call":
		c.addCall(n)
	case "for_statement":
		c.addLoop(n, "for")
	case "while_statement":
		c.addLoop(n, "while")
	case "if_statement":
		c.addConditional(n, "if", n.ChildByFieldName("condition"))
	case "elif_clause":
		c.addConditional(n, "elif", n.ChildByFieldName("condition"))
	case "conditional_expression":
		c.addConditional(n, "ternary", conditionalTest(n))
	case "string":
		c.stats.StringLiteralCount++
	case "integer", "float":
		c.stats.NumericLiteralCount++
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c.visit(n.Child(i))
	}
}

func (c *collector) addFunction(n *sitter.Node) {
	c.stats.FunctionCount++
	c.elems.Functions = append(c.elems.Functions, types.FunctionElement{
		Name:       fieldContent(n, "name", c.src),
		Args:       parameterNames(n.ChildByFieldName("parameters"), c.src),
		Decorators: decoratorNames(n, c.src),
		HasReturn:  hasReturn(n),
	})
}

func (c *collector) addClass(n *sitter.Node) {
	c.stats.ClassCount++
	cls := types.ClassElement{
		Name:    fieldContent(n, "name", c.src),
		Bases:   []string{},
		Methods: []types.MethodElement{},
	}
	if args := n.ChildByFieldName("superclasses"); args != nil {
		for i := 0; i < int(args.NamedChildCount()); i++ {
			base := args.NamedChild(i)
			switch base.Type() {
			case "identifier", "attribute":
				cls.Bases = append(cls.Bases, resolveName(base, c.src))
			}
		}
	}
	if body := n.ChildByFieldName("body"); body != nil {
		cls.Methods = methodDescriptors(body, c.src)
	}
	c.elems.Classes = append(c.elems.Classes, cls)
}

func (c *collector) addImport(n *sitter.Node) {
	c.stats.ImportCount++
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "dotted_name":
			c.elems.Imports = append(c.elems.Imports, types.ImportElement{
				Module: child.Content(c.src),
			})
		case "aliased_import":
			c.elems.Imports = append(c.elems.Imports, types.ImportElement{
				Module: fieldContent(child, "name", c.src),
				Alias:  fieldContent(child, "alias", c.src),
			})
		}
	}
}

func (c *collector) addFromImport(n *sitter.Node) {
	c.stats.ImportCount++
	moduleNode := n.ChildByFieldName("module_name")
	module := ""
	if moduleNode != nil {
		module = moduleNode.Content(c.src)
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if moduleNode != nil && child.StartByte() == moduleNode.StartByte() {
			continue
		}
		switch child.Type() {
		case "dotted_name", "identifier":
			c.elems.Imports = append(c.elems.Imports, types.ImportElement{
				Module: module,
				Name:   child.Content(c.src),
			})
		case "aliased_import":
			c.elems.Imports = append(c.elems.Imports, types.ImportElement{
				Module: module,
				Name:   fieldContent(child, "name", c.src),
				Alias:  fieldContent(child, "alias", c.src),
			})
		case "wildcard_import":
			c.elems.Imports = append(c.elems.Imports, types.ImportElement{
				Module: module,
				Name:   "*",
			})
		}
	}
}

func (c *collector) addAssignment(n *sitter.Node) {
	right := n.ChildByFieldName("right")
	if right == nil {
		// bare annotation, no value bound
		return
	}
	kind := valueKind(right)
	left := n.ChildByFieldName("left")
	for _, name := range bindingTargets(left, c.src) {
		c.stats.VariableCount++
		c.elems.Variables = append(c.elems.Variables, types.VariableElement{
			Name: name,
			Type: kind,
		})
	}
}

func (c *collector) addCall(n *sitter.Node) {
	c.stats.FunctionCallCount++
	call := types.CallElement{Name: resolveName(n.ChildByFieldName("function"), c.src)}
	if args := n.ChildByFieldName("arguments"); args != nil {
		for i := 0; i < int(args.NamedChildCount()); i++ {
			if args.NamedChild(i).Type() == "keyword_argument" {
				call.KeywordsCount++
			} else {
				call.ArgsCount++
			}
		}
	}
	c.elems.Calls = append(c.elems.Calls, call)
}

func (c *collector) addLoop(n *sitter.Node, kind string) {
	c.stats.LoopCount++
	loop := types.LoopElement{Type: kind}
	if kind == "for" {
		if name := resolveName(n.ChildByFieldName("left"), c.src); name != unknownName {
			loop.Target = name
		}
	}
	c.elems.Loops = append(c.elems.Loops, loop)
}

func (c *collector) addConditional(n *sitter.Node, kind string, test *sitter.Node) {
	c.stats.ConditionalCount++
	rendered := ""
	if test != nil {
		rendered = util.Truncate(test.Content(c.src), maxTestRender)
	}
	c.elems.Conditionals = append(c.elems.Conditionals, types.ConditionalElement{
		Type: kind,
		Test: rendered,
	})
}

// conditionalTest returns the condition of a ternary "a if cond else b".
func conditionalTest(n *sitter.Node) *sitter.Node {
	if n.NamedChildCount() >= 2 {
		return n.NamedChild(1)
	}
	return nil
}

// resolveName resolves an expression to a dotted name. Bare identifiers
// resolve to themselves; member accesses join the resolved object with the
// attribute using a dot. Anything else resolves to the unknown marker.
func resolveName(n *sitter.Node, src []byte) string {
	if n == nil {
		return unknownName
	}
	switch n.Type() {
	case "identifier":
		return n.Content(src)
	case "attribute":
		obj := resolveName(n.ChildByFieldName("object"), src)
		attr := n.ChildByFieldName("attribute")
		if attr == nil {
			return unknownName
		}
		return obj + "." + attr.Content(src)
	}
	return unknownName
}

// parameterNames extracts bare parameter names, unwrapping type annotations,
// defaults, and splat patterns.
func parameterNames(params *sitter.Node, src []byte) []string {
	names := []string{}
	if params == nil {
		return names
	}
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		switch p.Type() {
		case "identifier":
			names = append(names, p.Content(src))
		case "default_parameter", "typed_default_parameter":
			if name := p.ChildByFieldName("name"); name != nil {
				names = append(names, name.Content(src))
			}
		case "typed_parameter", "list_splat_pattern", "dictionary_splat_pattern":
			if id := firstIdentifier(p); id != nil {
				names = append(names, id.Content(src))
			}
		}
	}
	return names
}

func firstIdentifier(n *sitter.Node) *sitter.Node {
	if n.Type() == "identifier" {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if id := firstIdentifier(n.Child(i)); id != nil {
			return id
		}
	}
	return nil
}

// decoratorNames collects decorator names from a wrapping
// decorated_definition, if any. A call decorator resolves to its callee.
func decoratorNames(n *sitter.Node, src []byte) []string {
	names := []string{}
	parent := n.Parent()
	if parent == nil || parent.Type() != "decorated_definition" {
		return names
	}
	for i := 0; i < int(parent.NamedChildCount()); i++ {
		d := parent.NamedChild(i)
		if d.Type() != "decorator" {
			continue
		}
		expr := d.NamedChild(0)
		if expr == nil {
			continue
		}
		if expr.Type() == "call" {
			names = append(names, resolveName(expr.ChildByFieldName("function"), src))
		} else {
			names = append(names, resolveName(expr, src))
		}
	}
	return names
}

// hasReturn reports whether the subtree contains a return statement,
// including returns of nested definitions.
func hasReturn(n *sitter.Node) bool {
	if n.Type() == "return_statement" {
		return true
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if hasReturn(n.Child(i)) {
			return true
		}
	}
	return false
}

// methodDescriptors lists the direct function definitions of a class body.
func methodDescriptors(body *sitter.Node, src []byte) []types.MethodElement {
	methods := []types.MethodElement{}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		fn := child
		if child.Type() == "decorated_definition" {
			fn = child.ChildByFieldName("definition")
			if fn == nil {
				continue
			}
		}
		if fn.Type() != "function_definition" {
			continue
		}
		methods = append(methods, types.MethodElement{
			Name:      fieldContent(fn, "name", src),
			Args:      parameterNames(fn.ChildByFieldName("parameters"), src),
			HasReturn: hasReturn(fn),
		})
	}
	return methods
}

// bindingTargets returns the bound names of an assignment target: a bare
// identifier, or each identifier of a tuple/list pattern. Attribute and
// subscript targets are not variable bindings and yield nothing.
func bindingTargets(left *sitter.Node, src []byte) []string {
	if left == nil {
		return nil
	}
	switch left.Type() {
	case "identifier":
		return []string{left.Content(src)}
	case "pattern_list", "tuple_pattern", "list_pattern":
		var names []string
		for i := 0; i < int(left.NamedChildCount()); i++ {
			child := left.NamedChild(i)
			if child.Type() == "identifier" {
				names = append(names, child.Content(src))
			}
		}
		return names
	}
	return nil
}

// valueKind tags the assigned value with a coarse kind, mirroring the
// persisted "type" field: literal type names, container kinds,
// function_call, or unknown.
func valueKind(right *sitter.Node) string {
	switch right.Type() {
	case "string", "concatenated_string":
		return "str"
	case "integer":
		return "int"
	case "float":
		return "float"
	case "true", "false":
		return "bool"
	case "none":
		return "NoneType"
	case "list", "list_comprehension":
		return "list"
	case "dictionary", "dictionary_comprehension":
		return "dict"
	case "tuple":
		return "tuple"
	case "call":
		return "function_call"
	}
	return "unknown"
}

func fieldContent(n *sitter.Node, field string, src []byte) string {
	child := n.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return child.Content(src)
}
