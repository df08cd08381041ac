// Package codegen writes Go value types for Avro record schemas.
//
// Every record, top-level or nested, becomes a struct with avro tags and an
// AvroSchema method, so the generated types satisfy schema.Describer and are
// published without any runtime type mapping:
//
//	gen, err := codegen.New(codegen.Config{
//		SchemaFiles: []string{"order_created.avsc"},
//		Output:      "gen/events/events.gen.go",
//		Package:     "events",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := gen.Generate(); err != nil {
//		log.Fatal(err)
//	}
package codegen

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sokol111/schemapub/internal/avsc"
	"github.com/Sokol111/schemapub/pkg/messaging/kafka/avro/schema"
	"github.com/dave/jennifer/jen"
)

const schemaImport = "github.com/Sokol111/schemapub/pkg/messaging/kafka/avro/schema"

// Generator turns record schemas into a Go source file.
type Generator struct {
	config Config
}

// New creates a Generator with the given configuration.
func New(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.AbsolutePaths(); err != nil {
		return nil, err
	}
	return &Generator{config: cfg}, nil
}

// Generate loads the schema files and writes the generated file.
func (g *Generator) Generate() error {
	records := make([]schema.Record, 0, len(g.config.SchemaFiles))
	for _, path := range g.config.SchemaFiles {
		rec, err := avsc.LoadFile(path)
		if err != nil {
			return err
		}
		g.log("parsed %s from %s", rec.FullName(), filepath.Base(path))
		records = append(records, rec)
	}

	if err := os.MkdirAll(filepath.Dir(g.config.Output), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	out, err := os.Create(g.config.Output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := Render(out, g.config.Package, records); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	g.log("wrote %s", g.config.Output)
	return nil
}

func (g *Generator) log(format string, args ...any) {
	if g.config.Log != nil {
		_, _ = fmt.Fprintf(g.config.Log, format+"\n", args...)
	}
}

// Render writes a formatted Go file declaring a type for every record in
// records and every record nested inside them.
func Render(w io.Writer, pkg string, records []schema.Record) error {
	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by schemapub generate. DO NOT EDIT.")
	f.ImportName(schemaImport, "schema")

	e := &emitter{file: f, types: make(map[string]string), names: make(map[string]string)}
	for _, rec := range records {
		if _, err := e.typeName(rec); err != nil {
			return err
		}
	}
	for len(e.queue) > 0 {
		rec := e.queue[0]
		e.queue = e.queue[1:]
		if err := e.emit(rec); err != nil {
			return fmt.Errorf("%s: %w", rec.FullName(), err)
		}
	}

	return f.Render(w)
}

type emitter struct {
	file  *jen.File
	types map[string]string // record full name -> Go type
	names map[string]string // Go type -> record full name
	queue []schema.Record
}

// typeName returns the Go type of rec and queues rec the first time it is seen.
func (e *emitter) typeName(rec schema.Record) (string, error) {
	full := rec.FullName()
	if name, ok := e.types[full]; ok {
		return name, nil
	}

	name := goName(rec.Name)
	if other, ok := e.names[name]; ok {
		return "", fmt.Errorf("records %s and %s both map to Go type %s", other, full, name)
	}
	e.types[full] = name
	e.names[name] = full
	e.queue = append(e.queue, rec)
	return name, nil
}

func (e *emitter) emit(rec schema.Record) error {
	name := e.types[rec.FullName()]

	fields := make([]jen.Code, 0, len(rec.Fields))
	descriptors := make([]jen.Code, 0, len(rec.Fields))
	seen := make(map[string]string, len(rec.Fields))
	for _, field := range rec.Fields {
		fieldName := goName(field.Name)
		if other, ok := seen[fieldName]; ok {
			return fmt.Errorf("fields %s and %s both map to Go field %s", other, field.Name, fieldName)
		}
		seen[fieldName] = field.Name

		typ, err := e.goType(field.Type)
		if err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
		fields = append(fields, jen.Id(fieldName).Add(typ).Tag(map[string]string{"avro": field.Name}))

		desc, err := e.fieldDescriptor(field)
		if err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
		descriptors = append(descriptors, desc)
	}

	e.file.Commentf("%s is generated from the Avro record %s.", name, rec.FullName())
	if rec.Doc != "" {
		e.file.Comment("//")
		for _, line := range strings.Split(strings.TrimSpace(rec.Doc), "\n") {
			e.file.Comment(strings.TrimSpace(line))
		}
	}
	e.file.Type().Id(name).Struct(fields...)
	e.file.Line()

	recordFields := []jen.Code{jen.Id("Name").Op(":").Lit(rec.Name)}
	if rec.Namespace != "" {
		recordFields = append(recordFields, jen.Id("Namespace").Op(":").Lit(rec.Namespace))
	}
	if rec.Doc != "" {
		recordFields = append(recordFields, jen.Id("Doc").Op(":").Lit(rec.Doc))
	}
	recordFields = append(recordFields,
		jen.Id("Fields").Op(":").Index().Qual(schemaImport, "Field").Custom(multiLine, descriptors...))

	e.file.Commentf("AvroSchema describes %s to the serializer.", name)
	e.file.Func().Params(jen.Id(name)).Id("AvroSchema").Params().Qual(schemaImport, "Record").Block(
		jen.Return(jen.Qual(schemaImport, "Record").Custom(multiLine, recordFields...)),
	)
	e.file.Line()
	return nil
}

var multiLine = jen.Options{Open: "{", Close: "}", Separator: ",", Multi: true}

func (e *emitter) fieldDescriptor(field schema.Field) (jen.Code, error) {
	typ, err := e.schemaExpr(field.Type)
	if err != nil {
		return nil, err
	}

	items := []jen.Code{
		jen.Id("Name").Op(":").Lit(field.Name),
		jen.Id("Type").Op(":").Add(typ),
	}
	if field.Doc != "" {
		items = append(items, jen.Id("Doc").Op(":").Lit(field.Doc))
	}
	if field.HasDefault {
		def, err := defaultExpr(field.Default)
		if err != nil {
			return nil, err
		}
		items = append(items,
			jen.Id("Default").Op(":").Add(def),
			jen.Id("HasDefault").Op(":").True())
	}
	return jen.Values(items...), nil
}
