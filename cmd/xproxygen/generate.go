package main

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/importer"
	"go/parser"
	"go/printer"
	"go/token"
	"go/types"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const xproxyImport = "github.com/omeyang/xaop/pkg/aop/xproxy"

var (
	// ErrNoTypes 未指定任何类型
	ErrNoTypes = errors.New("xproxygen: no types given")
	// ErrTypeNotFound 包中没有该类型
	ErrTypeNotFound = errors.New("xproxygen: type not found")
	// ErrUnsupported 类型无法生成桩
	ErrUnsupported = errors.New("xproxygen: unsupported type")
)

// =============================================================================
// 解析
// =============================================================================

type pkgInfo struct {
	name  string
	fset  *token.FileSet
	types map[string]*typeDecl
	// methods 类型名到它的导出方法声明
	methods map[string][]*methodDecl
}

type typeDecl struct {
	spec *ast.TypeSpec
	file *ast.File
}

type methodDecl struct {
	fn   *ast.FuncDecl
	file *ast.File
}

// loadPackage 解析 dir 下的非测试 Go 文件，skip 为输出文件名
func loadPackage(dir, skip string) (*pkgInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	info := &pkgInfo{
		fset:    token.NewFileSet(),
		types:   make(map[string]*typeDecl),
		methods: make(map[string][]*methodDecl),
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") || name == skip {
			continue
		}
		f, err := parser.ParseFile(info.fset, filepath.Join(dir, name), nil, parser.SkipObjectResolution)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		if info.name == "" {
			info.name = f.Name.Name
		}
		if f.Name.Name != info.name {
			continue
		}
		info.collect(f)
	}
	if info.name == "" {
		return nil, fmt.Errorf("%w: no Go files in %s", ErrTypeNotFound, dir)
	}
	return info, nil
}

func (p *pkgInfo) collect(f *ast.File) {
	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				if ts, ok := spec.(*ast.TypeSpec); ok {
					p.types[ts.Name.Name] = &typeDecl{spec: ts, file: f}
				}
			}
		case *ast.FuncDecl:
			if recv := receiverName(d); recv != "" && d.Name.IsExported() {
				p.methods[recv] = append(p.methods[recv], &methodDecl{fn: d, file: f})
			}
		}
	}
}

// receiverName 返回 T 或 *T 接收者的类型名，泛型接收者返回空串
func receiverName(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) != 1 {
		return ""
	}
	expr := fn.Recv.List[0].Type
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	if id, ok := expr.(*ast.Ident); ok {
		return id.Name
	}
	return ""
}

// =============================================================================
// 方法模型
// =============================================================================

type importSpec struct {
	name string
	path string
}

type param struct {
	names []string // 空串表示匿名参数
	typ   string
}

type method struct {
	name    string
	params  []param
	results []string
	// imports 签名引用的导入，方法最终被生成时才写入文件
	imports map[importSpec]bool
}

func newMethod(name string) method {
	return method{name: name, imports: make(map[importSpec]bool)}
}

type stub struct {
	typeName string
	concrete bool
	methods  []method
}

func (s stub) proxyName() string {
	return strings.ToLower(s.typeName[:1]) + s.typeName[1:] + "Proxy"
}

type builder struct {
	pkg *pkgInfo
	dir string
	// imports 生成文件的导入
	imports map[importSpec]bool
	// byPath 与 byName 记录已分配的包名，为其他包的类型命名时避让
	byPath map[string]string
	byName map[string]string
	// importer 懒加载，解析其他包中的内嵌类型
	importer types.ImporterFrom
}

func newBuilder(pkg *pkgInfo, dir string) *builder {
	b := &builder{
		pkg:     pkg,
		dir:     dir,
		imports: make(map[importSpec]bool),
		byPath:  make(map[string]string),
		byName:  make(map[string]string),
	}
	b.use(importSpec{name: "xproxy", path: xproxyImport})
	return b
}

func (b *builder) use(spec importSpec) {
	b.imports[spec] = true
	b.reserve(spec)
}

// reserve 登记源码中出现的包名
func (b *builder) reserve(spec importSpec) {
	if _, ok := b.byPath[spec.path]; !ok {
		b.byPath[spec.path] = spec.name
	}
	if _, ok := b.byName[spec.name]; !ok {
		b.byName[spec.name] = spec.path
	}
}

func (b *builder) stubFor(name string) (stub, error) {
	td, ok := b.pkg.types[name]
	if !ok {
		return stub{}, fmt.Errorf("%w: %s in package %s", ErrTypeNotFound, name, b.pkg.name)
	}
	if td.spec.TypeParams != nil && len(td.spec.TypeParams.List) > 0 {
		return stub{}, fmt.Errorf("%w: %s is generic", ErrUnsupported, name)
	}

	var s stub
	switch t := td.spec.Type.(type) {
	case *ast.InterfaceType:
		methods, err := b.interfaceMethods(name, t, td.file, map[string]bool{})
		if err != nil {
			return stub{}, err
		}
		s = stub{typeName: name, methods: dedupe(methods)}
	case *ast.StructType:
		methods, err := b.structMethods(name, t, td.file)
		if err != nil {
			return stub{}, err
		}
		if len(methods) == 0 {
			return stub{}, fmt.Errorf("%w: %s has no exported methods", ErrUnsupported, name)
		}
		s = stub{typeName: name, concrete: true, methods: methods}
	default:
		return stub{}, fmt.Errorf("%w: %s is neither an interface nor a struct", ErrUnsupported, name)
	}

	for _, m := range s.methods {
		for spec := range m.imports {
			b.use(spec)
		}
	}
	return s, nil
}

// dedupe 去掉多个内嵌接口带来的同名方法，保留第一个
func dedupe(methods []method) []method {
	seen := make(map[string]bool, len(methods))
	out := methods[:0]
	for _, m := range methods {
		if seen[m.name] {
			continue
		}
		seen[m.name] = true
		out = append(out, m)
	}
	return out
}

// interfaceMethods 按声明顺序展开方法，内嵌接口递归展开
func (b *builder) interfaceMethods(name string, it *ast.InterfaceType, file *ast.File, seen map[string]bool) ([]method, error) {
	if seen[name] {
		return nil, nil
	}
	seen[name] = true

	var out []method
	for _, field := range it.Methods.List {
		if len(field.Names) > 0 {
			ft, ok := field.Type.(*ast.FuncType)
			if !ok {
				return nil, fmt.Errorf("%w: %s contains a type constraint", ErrUnsupported, name)
			}
			for _, n := range field.Names {
				out = append(out, b.method(n.Name, ft, file))
			}
			continue
		}

		switch e := field.Type.(type) {
		case *ast.Ident:
			if e.Name == "error" {
				out = append(out, errorMethod())
				continue
			}
			td, ok := b.pkg.types[e.Name]
			if !ok {
				return nil, fmt.Errorf("%w: %s embeds unknown %s", ErrUnsupported, name, e.Name)
			}
			inner, ok := td.spec.Type.(*ast.InterfaceType)
			if !ok {
				return nil, fmt.Errorf("%w: %s embeds non-interface %s", ErrUnsupported, name, e.Name)
			}
			ms, err := b.interfaceMethods(e.Name, inner, td.file, seen)
			if err != nil {
				return nil, err
			}
			out = append(out, ms...)
		case *ast.SelectorExpr:
			ms, err := b.foreignInterface(name, e, file)
			if err != nil {
				return nil, err
			}
			out = append(out, ms...)
		default:
			return nil, fmt.Errorf("%w: %s contains a type constraint", ErrUnsupported, name)
		}
	}
	return out, nil
}

// foreignInterface 展开其他包中的内嵌接口
func (b *builder) foreignInterface(owner string, sel *ast.SelectorExpr, file *ast.File) ([]method, error) {
	tn, err := b.lookup(sel, file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s embeds %s: %w", ErrUnsupported, owner, b.expr(sel), err)
	}
	iface, ok := tn.Type().Underlying().(*types.Interface)
	if !ok {
		return nil, fmt.Errorf("%w: %s embeds non-interface %s", ErrUnsupported, owner, b.expr(sel))
	}
	out := make([]method, 0, iface.NumMethods())
	for i := range iface.NumMethods() {
		fn := iface.Method(i)
		if !fn.Exported() {
			return nil, fmt.Errorf("%w: %s embeds %s with unexported method %s", ErrUnsupported, owner, b.expr(sel), fn.Name())
		}
		out = append(out, b.typesMethod(fn.Name(), fn.Type().(*types.Signature)))
	}
	return out, nil
}

func errorMethod() method {
	m := newMethod("Error")
	m.results = []string{"string"}
	return m
}

func (b *builder) method(name string, ft *ast.FuncType, file *ast.File) method {
	m := newMethod(name)
	if ft.Params != nil {
		for _, field := range ft.Params.List {
			b.useImports(field.Type, file, m.imports)
			p := param{typ: b.expr(field.Type)}
			if len(field.Names) == 0 {
				p.names = []string{""}
			}
			for _, n := range field.Names {
				p.names = append(p.names, n.Name)
			}
			m.params = append(m.params, p)
		}
	}
	if ft.Results != nil {
		for _, field := range ft.Results.List {
			b.useImports(field.Type, file, m.imports)
			n := max(len(field.Names), 1)
			for range n {
				m.results = append(m.results, b.expr(field.Type))
			}
		}
	}
	return m
}

// typesMethod 由 go/types 签名构造方法，其他包的类型按分配的包名限定
func (b *builder) typesMethod(name string, sig *types.Signature) method {
	m := newMethod(name)
	qualify := func(p *types.Package) string {
		spec := b.assign(p)
		m.imports[spec] = true
		return spec.name
	}

	params := sig.Params()
	for i := range params.Len() {
		v := params.At(i)
		typ := types.TypeString(v.Type(), qualify)
		if sig.Variadic() && i == params.Len()-1 {
			if s, ok := v.Type().(*types.Slice); ok {
				typ = "..." + types.TypeString(s.Elem(), qualify)
			}
		}
		m.params = append(m.params, param{names: []string{v.Name()}, typ: typ})
	}
	results := sig.Results()
	for i := range results.Len() {
		m.results = append(m.results, types.TypeString(results.At(i).Type(), qualify))
	}
	return m
}

// assign 为包 p 分配生成文件中的名字，与其他路径已占用的名字错开
func (b *builder) assign(p *types.Package) importSpec {
	if name, ok := b.byPath[p.Path()]; ok {
		return importSpec{name: name, path: p.Path()}
	}
	name := p.Name()
	for n := 2; ; n++ {
		if owner, ok := b.byName[name]; !ok || owner == p.Path() {
			break
		}
		name = p.Name() + strconv.Itoa(n)
	}
	b.byPath[p.Path()] = name
	b.byName[name] = p.Path()
	return importSpec{name: name, path: p.Path()}
}

// lookup 解析 pkg.Name 形式的类型表达式
func (b *builder) lookup(sel *ast.SelectorExpr, file *ast.File) (*types.TypeName, error) {
	pkgID, ok := sel.X.(*ast.Ident)
	if !ok {
		return nil, errors.New("not a package-qualified type")
	}
	var importPath string
	for _, imp := range file.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err == nil && importName(imp, p) == pkgID.Name {
			importPath = p
			break
		}
	}
	if importPath == "" {
		return nil, fmt.Errorf("no import named %s", pkgID.Name)
	}

	if b.importer == nil {
		imp, ok := importer.ForCompiler(b.pkg.fset, "source", nil).(types.ImporterFrom)
		if !ok {
			return nil, errors.New("source importer unavailable")
		}
		b.importer = imp
	}
	pkg, err := b.importer.ImportFrom(importPath, b.dir, 0)
	if err != nil {
		return nil, err
	}
	tn, ok := pkg.Scope().Lookup(sel.Sel.Name).(*types.TypeName)
	if !ok || !tn.Exported() {
		return nil, fmt.Errorf("%s is not an exported type of %s", sel.Sel.Name, importPath)
	}
	return tn, nil
}

func (b *builder) expr(e ast.Expr) string {
	var buf bytes.Buffer
	_ = printer.Fprint(&buf, b.pkg.fset, e)
	return buf.String()
}

// useImports 记录类型表达式引用的导入
func (b *builder) useImports(e ast.Expr, file *ast.File, into map[importSpec]bool) {
	ast.Inspect(e, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		id, ok := sel.X.(*ast.Ident)
		if !ok {
			return true
		}
		for _, imp := range file.Imports {
			p, err := strconv.Unquote(imp.Path.Value)
			if err != nil {
				continue
			}
			if importName(imp, p) == id.Name {
				spec := importSpec{name: id.Name, path: p}
				into[spec] = true
				b.reserve(spec)
			}
		}
		return false
	})
}

func importName(imp *ast.ImportSpec, p string) string {
	if imp.Name != nil {
		return imp.Name.Name
	}
	base := path.Base(p)
	if isMajorVersion(base) {
		base = path.Base(path.Dir(p))
	}
	if i := strings.Index(base, ".v"); i > 0 {
		base = base[:i]
	}
	return strings.TrimPrefix(base, "go-")
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	_, err := strconv.Atoi(s[1:])
	return err == nil
}

// =============================================================================
// 内嵌提升
// =============================================================================

// selector 某一深度上可见的导出字段或方法
type selector struct {
	depth  int
	method *method // nil 表示字段
}

// promotion 收集 *T 方法集，规则同 Go 选择子：
// 同名选择子取最浅深度，该深度上恰有一个且是方法时才进入方法集。
type promotion struct {
	b    *builder
	sels map[string][]selector
	// path 当前展开路径上的类型，指针内嵌成环时停止
	path map[string]bool
}

// structMethods 返回 *name 的导出方法（含内嵌字段提升的方法），按名称排序
func (b *builder) structMethods(name string, st *ast.StructType, file *ast.File) ([]method, error) {
	pr := &promotion{b: b, sels: make(map[string][]selector), path: make(map[string]bool)}
	if err := pr.local(name, st, file, 0); err != nil {
		return nil, err
	}

	var out []method
	for _, list := range pr.sels {
		shallowest := list[0].depth
		for _, s := range list[1:] {
			shallowest = min(shallowest, s.depth)
		}
		var hit []selector
		for _, s := range list {
			if s.depth == shallowest {
				hit = append(hit, s)
			}
		}
		if len(hit) == 1 && hit[0].method != nil {
			out = append(out, *hit[0].method)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out, nil
}

func (pr *promotion) add(name string, depth int, m *method) {
	if !token.IsExported(name) {
		return
	}
	pr.sels[name] = append(pr.sels[name], selector{depth: depth, method: m})
}

// local 展开同包类型 name：方法与具名字段位于 depth，内嵌类型的成员位于 depth+1
func (pr *promotion) local(name string, st *ast.StructType, file *ast.File, depth int) error {
	if pr.path[name] {
		return nil
	}
	pr.path[name] = true
	defer delete(pr.path, name)

	for _, d := range pr.b.pkg.methods[name] {
		m := pr.b.method(d.fn.Name.Name, d.fn.Type, d.file)
		pr.add(m.name, depth, &m)
	}
	if st == nil {
		return nil
	}
	for _, field := range st.Fields.List {
		for _, n := range field.Names {
			pr.add(n.Name, depth, nil)
		}
		if len(field.Names) == 0 {
			if err := pr.embedded(name, field.Type, file, depth); err != nil {
				return err
			}
		}
	}
	return nil
}

// embedded 展开 owner 在 depth 上的内嵌字段 e
func (pr *promotion) embedded(owner string, e ast.Expr, file *ast.File, depth int) error {
	if star, ok := e.(*ast.StarExpr); ok {
		e = star.X
	}

	switch t := e.(type) {
	case *ast.Ident:
		pr.add(t.Name, depth, nil)
		if t.Name == "error" {
			m := errorMethod()
			pr.add(m.name, depth+1, &m)
			return nil
		}
		td, ok := pr.b.pkg.types[t.Name]
		if !ok || td.spec.Assign.IsValid() {
			return fmt.Errorf("%w: %s embeds %s whose methods cannot be resolved", ErrUnsupported, owner, t.Name)
		}
		switch inner := td.spec.Type.(type) {
		case *ast.StructType:
			return pr.local(t.Name, inner, td.file, depth+1)
		case *ast.InterfaceType:
			ms, err := pr.b.interfaceMethods(t.Name, inner, td.file, map[string]bool{})
			if err != nil {
				return err
			}
			for i := range ms {
				pr.add(ms[i].name, depth+1, &ms[i])
			}
			return nil
		default:
			return pr.local(t.Name, nil, td.file, depth+1)
		}
	case *ast.SelectorExpr:
		pr.add(t.Sel.Name, depth, nil)
		return pr.foreign(owner, t, file, depth+1)
	default:
		return fmt.Errorf("%w: %s embeds %s", ErrUnsupported, owner, pr.b.expr(e))
	}
}

// foreign 用 go/types 展开其他包的内嵌类型，其成员从 depth 开始
func (pr *promotion) foreign(owner string, sel *ast.SelectorExpr, file *ast.File, depth int) error {
	tn, err := pr.b.lookup(sel, file)
	if err != nil {
		return fmt.Errorf("%w: %s embeds %s: %w", ErrUnsupported, owner, pr.b.expr(sel), err)
	}

	t := tn.Type()
	var ms *types.MethodSet
	if types.IsInterface(t) {
		ms = types.NewMethodSet(t)
	} else {
		ms = types.NewMethodSet(types.NewPointer(t))
	}
	for i := range ms.Len() {
		s := ms.At(i)
		fn, ok := s.Obj().(*types.Func)
		if !ok || !fn.Exported() {
			continue
		}
		m := pr.b.typesMethod(fn.Name(), fn.Type().(*types.Signature))
		pr.add(m.name, depth+len(s.Index())-1, &m)
	}
	if st, ok := t.Underlying().(*types.Struct); ok {
		for i := range st.NumFields() {
			pr.add(st.Field(i).Name(), depth, nil)
		}
	}
	return nil
}

// =============================================================================
// 输出
// =============================================================================

// Generate 解析 dir 中的包并返回 names 的桩源码（已 gofmt）
func Generate(dir string, names []string, output string) ([]byte, error) {
	if len(names) == 0 {
		return nil, ErrNoTypes
	}
	pkg, err := loadPackage(dir, output)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve dir %s: %w", dir, err)
	}

	b := newBuilder(pkg, abs)
	stubs := make([]stub, 0, len(names))
	for _, t := range names {
		s, err := b.stubFor(t)
		if err != nil {
			return nil, err
		}
		stubs = append(stubs, s)
	}

	var buf bytes.Buffer
	buf.WriteString("// Code generated by xproxygen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkg.name)
	writeImports(&buf, b.imports)
	for _, s := range stubs {
		writeStub(&buf, s)
	}
	writeInit(&buf, stubs)

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w", err)
	}
	return src, nil
}

func writeImports(buf *bytes.Buffer, imports map[importSpec]bool) {
	var std, other []importSpec
	for spec := range imports {
		if strings.Contains(strings.SplitN(spec.path, "/", 2)[0], ".") {
			other = append(other, spec)
		} else {
			std = append(std, spec)
		}
	}
	byPath := func(list []importSpec) {
		sort.Slice(list, func(i, j int) bool {
			if list[i].path != list[j].path {
				return list[i].path < list[j].path
			}
			return list[i].name < list[j].name
		})
	}
	byPath(std)
	byPath(other)

	line := func(spec importSpec) {
		if spec.name != path.Base(spec.path) {
			fmt.Fprintf(buf, "\t%s %q\n", spec.name, spec.path)
			return
		}
		fmt.Fprintf(buf, "\t%q\n", spec.path)
	}
	buf.WriteString("import (\n")
	for _, spec := range std {
		line(spec)
	}
	if len(std) > 0 && len(other) > 0 {
		buf.WriteString("\n")
	}
	for _, spec := range other {
		line(spec)
	}
	buf.WriteString(")\n")
}

var identPattern = regexp.MustCompile(`[\p{L}_][\p{L}\p{Nd}_]*`)

// argNames 为参数分配桩中的名字。匿名、空白以及会遮蔽方法体所用标识符
// （接收者 p、out、xproxy 和结果类型中的名字，例如包名 time）的参数改名为 aN。
func argNames(m method) [][]string {
	reserved := map[string]bool{"p": true, "out": true, "xproxy": true}
	for _, r := range m.results {
		for _, id := range identPattern.FindAllString(r, -1) {
			reserved[id] = true
		}
	}
	taken := make(map[string]bool)
	for _, p := range m.params {
		for _, n := range p.names {
			taken[n] = true
		}
	}

	out := make([][]string, len(m.params))
	idx := 0
	for i, p := range m.params {
		for _, n := range p.names {
			if n == "" || n == "_" || reserved[n] {
				n = "a" + strconv.Itoa(idx)
				for taken[n] || reserved[n] {
					n += "_"
				}
				taken[n] = true
			}
			out[i] = append(out[i], n)
			idx++
		}
	}
	return out
}

func writeStub(buf *bytes.Buffer, s stub) {
	name := s.proxyName()
	recv := "p " + name
	if s.concrete {
		recv = "p *" + name
		fmt.Fprintf(buf, "\ntype %s struct {\n\t*%s\n\txproxy.Stub\n}\n", name, s.typeName)
	} else {
		fmt.Fprintf(buf, "\ntype %s struct{ xproxy.Stub }\n", name)
	}

	for _, m := range s.methods {
		names := argNames(m)
		params := make([]string, 0, len(m.params))
		args := []string{strconv.Quote(m.name)}
		for i, p := range m.params {
			params = append(params, strings.Join(names[i], ", ")+" "+p.typ)
			args = append(args, names[i]...)
		}
		fmt.Fprintf(buf, "\nfunc (%s) %s(%s)%s {\n", recv, m.name, strings.Join(params, ", "), resultList(m.results))

		invoke := fmt.Sprintf("p.Dispatcher.Invoke(%s)", strings.Join(args, ", "))
		if len(m.results) == 0 {
			fmt.Fprintf(buf, "\t%s\n}\n", invoke)
			continue
		}
		fmt.Fprintf(buf, "\tout := %s\n", invoke)
		rets := make([]string, len(m.results))
		for i, r := range m.results {
			if r == "error" {
				rets[i] = fmt.Sprintf("xproxy.Err(out, %d)", i)
			} else {
				rets[i] = fmt.Sprintf("xproxy.Out[%s](out, %d)", r, i)
			}
		}
		fmt.Fprintf(buf, "\treturn %s\n}\n", strings.Join(rets, ", "))
	}
}

func resultList(results []string) string {
	switch len(results) {
	case 0:
		return ""
	case 1:
		return " " + results[0]
	default:
		return " (" + strings.Join(results, ", ") + ")"
	}
}

func writeInit(buf *bytes.Buffer, stubs []stub) {
	buf.WriteString("\nfunc init() {\n")
	for _, s := range stubs {
		if s.concrete {
			fmt.Fprintf(buf, "\txproxy.RegisterConcrete[*%[1]s](func(s xproxy.Stub) any {\n\t\treturn &%[2]s{%[1]s: new(%[1]s), Stub: s}\n\t})\n",
				s.typeName, s.proxyName())
			continue
		}
		fmt.Fprintf(buf, "\txproxy.RegisterInterface(func(s xproxy.Stub) %s { return %s{s} })\n", s.typeName, s.proxyName())
	}
	buf.WriteString("}\n")
}
