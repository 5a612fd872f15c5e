// Command adtgen generates the marker interfaces that close the ast sum
// types, together with the marker method of every member.
//
//	adtgen <input.adt> <output.go> <package>
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle"

	"github.com/dave/jennifer/jen"
)

// File is a whole .adt input.
type File struct {
	Decls []*Decl `@@*`
}

// Decl is either an alias, "type A = B;", or a sum,
// "type A = | X | Y of Z;".
type Decl struct {
	Name    string    `"type" @Ident "="`
	Alias   *string   `(  (@Ident | @String | @RawString)`
	Members *[]Member ` | ("|" (@@))*)`
	End     struct{}  `";"`
}

// Member is one alternative of a sum. Without "of" the member type is
// declared by hand elsewhere in the package and only gets its marker method.
type Member struct {
	Name string `@Ident`
	Of   string `("of" (@Ident | @String | @RawString))?`
}

var parser = participle.MustBuild(&File{})

func Parse(filename string, src []byte) (*File, error) {
	var f File
	if err := parser.ParseBytes(src, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return &f, nil
}

func (f *File) validate() error {
	decls := map[string]bool{}
	for _, decl := range f.Decls {
		if decls[decl.Name] {
			return fmt.Errorf("type %s is declared twice", decl.Name)
		}
		decls[decl.Name] = true

		if decl.Members == nil {
			continue
		}
		members := map[string]bool{}
		for _, m := range *decl.Members {
			if members[m.Name] {
				return fmt.Errorf("%s lists %s twice", decl.Name, m.Name)
			}
			members[m.Name] = true
		}
	}
	return nil
}

func (f *File) isSum(name string) bool {
	for _, decl := range f.Decls {
		if decl.Name == name && decl.Members != nil {
			return true
		}
	}
	return false
}

// marker is the method that admits a type into the sum named sum.
func marker(sum string) string {
	return "is_" + sum
}

// Generate renders f as Go source in package pkg. source only appears in
// the header comment.
func (f *File) Generate(source, pkg string) string {
	out := jen.NewFile(pkg)
	out.HeaderComment(fmt.Sprintf("Code generated by adtgen from %s. DO NOT EDIT.", source))

	for _, decl := range f.Decls {
		if decl.Alias != nil {
			out.Type().Id(decl.Name).Id(*decl.Alias)
			continue
		}

		out.Type().Id(decl.Name).Interface(jen.Id(marker(decl.Name)).Params())
		for _, m := range *decl.Members {
			switch {
			case m.Of == "":
			case f.isSum(m.Of):
				// An interface can't carry methods, so wrap it.
				out.Type().Id(m.Name).Struct(jen.Id(m.Of))
			default:
				out.Type().Id(m.Name).Id(m.Of)
			}
			out.Func().Params(jen.Id("v").Id(m.Name)).Id(marker(decl.Name)).Params().Block()
		}
	}

	return fmt.Sprintf("%#v", out)
}

func run(in, out, pkg string) error {
	src, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	f, err := Parse(in, src)
	if err != nil {
		return err
	}
	return os.WriteFile(out, []byte(f.Generate(in, pkg)), 0o644)
}

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: adtgen <input.adt> <output.go> <package>")
		os.Exit(2)
	}
	if err := run(os.Args[1], os.Args[2], os.Args[3]); err != nil {
		fmt.Fprintf(os.Stderr, "adtgen: %s\n", err)
		os.Exit(1)
	}
}
