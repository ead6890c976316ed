// Package archivetest writes small jars for tests in other packages.
package archivetest

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/ludo-technologies/jarscn/internal/classfile"
	"github.com/ludo-technologies/jarscn/internal/classfile/classfiletest"
)

const (
	opIconst0  = 0x03
	opDconst0  = 0x0e
	opAload0   = 0x2a
	opDreturn  = 0xaf
	opAreturn  = 0xb0
	objectName = "java/lang/Object"
)

// Build zips entries in name order
func Build(t testing.TB, entries map[string][]byte) []byte {
	t.Helper()

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create entry %s: %v", name, err)
		}
		if _, err := w.Write(entries[name]); err != nil {
			t.Fatalf("write entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close jar: %v", err)
	}
	return buf.Bytes()
}

// Write stores a jar built from entries at dir/name and returns its path
func Write(t testing.TB, dir, name string, entries map[string][]byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, Build(t, entries), 0o644); err != nil {
		t.Fatalf("write jar: %v", err)
	}
	return path
}

// ShapesEntries is a three-type hierarchy with known metrics:
//
//	com/example/Shape   interface, area()D
//	com/example/Base    implements Shape, 1 field, overrides area
//	com/example/Circle  extends Base, 2 fields, overrides area and toString
//
// Expected: 2 classes, 1 interface, max depth 2, average depth 4/3,
// average overrides 1.5, average fields 1.0, ABC <1,4,1>.
func ShapesEntries() map[string][]byte {
	shape := classfiletest.NewClass(classfile.AccPublic|classfile.AccInterface|classfile.AccAbstract,
		"com/example/Shape", objectName)
	shape.Method(classfile.AccPublic|classfile.AccAbstract, "area", "()D", nil)

	base := classfiletest.NewClass(classfile.AccPublic, "com/example/Base", objectName, "com/example/Shape")
	base.Field(0, "id", "I")
	base.Method(classfile.AccPublic, "<init>", "()V", base.Code().
		Op(opAload0).
		Invoke(classfile.INVOKESPECIAL, objectName, "<init>", "()V").
		Op(classfile.RETURN).Bytes())
	base.Method(classfile.AccPublic, "area", "()D", base.Code().
		Op(opDconst0).Op(opDreturn).Bytes())

	circle := classfiletest.NewClass(classfile.AccPublic, "com/example/Circle", "com/example/Base")
	circle.Field(0, "radius", "D")
	circle.Field(0, "label", "Ljava/lang/String;")
	circle.Method(classfile.AccPublic, "<init>", "()V", circle.Code().
		Op(opAload0).
		Invoke(classfile.INVOKESPECIAL, "com/example/Base", "<init>", "()V").
		Op(classfile.RETURN).Bytes())
	circle.Method(classfile.AccPublic, "area", "()D", circle.Code().
		Op(opIconst0).
		Var(classfile.ISTORE, 1).
		Var(classfile.ILOAD, 1).
		Jump(classfile.IFEQ, 3).
		Op(opDconst0).Op(opDreturn).Bytes())
	circle.Method(classfile.AccPublic, "toString", "()Ljava/lang/String;", circle.Code().
		Type(classfile.NEW, "java/lang/StringBuilder").
		Invoke(classfile.INVOKESPECIAL, "java/lang/StringBuilder", "<init>", "()V").
		Op(opAreturn).Bytes())

	return map[string][]byte{
		"META-INF/MANIFEST.MF":     []byte("Manifest-Version: 1.0\n"),
		"com/example/Shape.class":  shape.Bytes(),
		"com/example/Base.class":   base.Bytes(),
		"com/example/Circle.class": circle.Bytes(),
	}
}

// Corrupt adds an undecodable class entry to entries and returns them
func Corrupt(entries map[string][]byte, name string) map[string][]byte {
	entries[name] = []byte{0xca, 0xfe, 0xba, 0xbe, 0x00}
	return entries
}
