package stdlib

import (
	"strings"

	"github.com/ardnew/dotcall/lang"
)

// BoxTypes are the accepted values of the type parameter of .box.
var BoxTypes = []string{"callout", "tip", "note", "warning", "error"}

// Document returns the functions producing document content and settings.
func Document() lang.Library {
	types := make([]string, 0, len(lang.DocumentTypes()))
	for _, t := range lang.DocumentTypes() {
		types = append(types, t.String())
	}

	return lang.Library{
		Name: "document",
		Functions: []*lang.Function{
			lang.NewFunction("doctype", invokeDoctype,
				lang.Doc("Sets the document type. May be called once per document."),
				lang.Validate(once("doctype")),
				lang.Param("type", lang.KindEnum, lang.OneOf(types...))),
			lang.NewFunction("box", invokeBox,
				lang.Doc("Wraps content in a titled box."),
				lang.Param("title", lang.KindString, lang.Optional(nil)),
				lang.Param("type", lang.KindEnum, lang.OneOf(BoxTypes...), lang.Optional(nil)),
				lang.Param("padding", lang.KindSizes, lang.Optional(nil)),
				lang.Param("background", lang.KindColor, lang.Optional(nil)),
				lang.Param("body", lang.KindContent, lang.AsBody())),
			lang.NewFunction("text", invokeText,
				lang.Doc("Styles inline content."),
				lang.Param("text", lang.KindContent),
				lang.Param("size", lang.KindSize, lang.Optional(nil)),
				lang.Param("color", lang.KindColor, lang.Optional(nil)),
				lang.Param("weight", lang.KindEnum, lang.OneOf("normal", "bold"), lang.Optional(nil))),
			lang.NewFunction("code",
				func(_ *lang.Context, args lang.Args) (lang.Value, error) {
					lang_ := ""
					if args.Has("lang") {
						lang_ = args.Text("lang")
					}

					return lang.Content{&lang.CodeBlock{Lang: lang_, Code: args.Text("code")}}, nil
				},
				lang.Doc("Creates a code block. Its content is not evaluated."),
				lang.Param("lang", lang.KindString, lang.Optional(nil)),
				lang.Param("code", lang.KindString, lang.AsBody())),
			lang.NewFunction("speakernote",
				func(_ *lang.Context, args lang.Args) (lang.Value, error) {
					return lang.Content{&lang.Container{
						Class:    "speaker-note",
						Children: args.Content("content"),
					}}, nil
				},
				lang.Doc("Adds a note visible to the speaker only."),
				lang.OnlyFor(lang.DocumentSlides),
				lang.Param("content", lang.KindContent)),
			lang.NewFunction("pagebreak",
				func(*lang.Context, lang.Args) (lang.Value, error) {
					return lang.Content{&lang.PageBreak{}}, nil
				},
				lang.Doc("Starts a new page or slide."),
				lang.NotFor(lang.DocumentPlain)),
		},
	}
}

// once returns a validator rejecting every call after the first.
func once(key string) lang.Validator {
	return func(c *lang.Context, call *lang.CallDescription) error {
		if !c.Env().Once(key) {
			return ErrAlreadyCalled.Wrapf(".%s", call.Name)
		}

		return nil
	}
}

func invokeDoctype(c *lang.Context, args lang.Args) (lang.Value, error) {
	t, err := lang.ParseDocumentType(args.Enum("type").Name)
	if err != nil {
		return nil, err
	}

	c.Env().SetDocumentType(t)

	return lang.Void{}, nil
}

func invokeBox(_ *lang.Context, args lang.Args) (lang.Value, error) {
	box := &lang.Box{Children: args.Content("body")}

	if args.Has("title") {
		box.Title = args.Text("title")
	}

	if args.Has("type") {
		box.Type = args.Enum("type").String()
	}

	var style []string

	if p, ok := args.Get("padding").(lang.Sizes); ok {
		style = append(style, "padding: "+p.String())
	}

	if c, ok := args.Get("background").(lang.Color); ok {
		style = append(style, "background-color: "+c.String())
	}

	box.Style = strings.Join(style, "; ")

	return lang.Content{box}, nil
}

func invokeText(_ *lang.Context, args lang.Args) (lang.Value, error) {
	var style []string

	if s, ok := args.Get("size").(lang.Size); ok {
		style = append(style, "font-size: "+s.String())
	}

	if c, ok := args.Get("color").(lang.Color); ok {
		style = append(style, "color: "+c.String())
	}

	if args.Has("weight") {
		style = append(style, "font-weight: "+args.Enum("weight").String())
	}

	return lang.Content{&lang.Inline{Children: []lang.Node{&lang.Container{
		Class:    "text",
		Style:    strings.Join(style, "; "),
		Children: args.Content("text"),
	}}}}, nil
}
