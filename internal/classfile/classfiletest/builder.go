// Package classfiletest assembles minimal class files for tests.
package classfiletest

import (
	"bytes"
	"encoding/binary"
)

const (
	tagUtf8               = 1
	tagClass              = 7
	tagMethodref          = 10
	tagInterfaceMethodref = 11
	tagNameAndType        = 12
	tagInvokeDynamic      = 18
)

// Class builds a class file. Constant pool entries are interned, so asking
// twice for the same reference returns the same index.
type Class struct {
	access     uint16
	name       uint16
	super      uint16
	interfaces []uint16
	fields     []member
	methods    []member

	pool    bytes.Buffer
	count   uint16
	interns map[string]uint16
}

type member struct {
	access  uint16
	name    uint16
	desc    uint16
	code    []byte
	hasCode bool
}

// NewClass starts a class. An empty super name leaves super_class at 0.
func NewClass(access uint16, name, super string, interfaces ...string) *Class {
	c := &Class{access: access, count: 1, interns: make(map[string]uint16)}
	c.name = c.ClassRef(name)
	if super != "" {
		c.super = c.ClassRef(super)
	}
	for _, iface := range interfaces {
		c.interfaces = append(c.interfaces, c.ClassRef(iface))
	}
	return c
}

func (c *Class) intern(key string, write func(*bytes.Buffer)) uint16 {
	if idx, ok := c.interns[key]; ok {
		return idx
	}
	write(&c.pool)
	idx := c.count
	c.count++
	c.interns[key] = idx
	return idx
}

// UTF8 interns a Utf8 constant.
func (c *Class) UTF8(s string) uint16 {
	return c.intern("u:"+s, func(b *bytes.Buffer) {
		b.WriteByte(tagUtf8)
		writeU2(b, uint16(len(s)))
		b.WriteString(s)
	})
}

// ClassRef interns a Class constant.
func (c *Class) ClassRef(name string) uint16 {
	nameIdx := c.UTF8(name)
	return c.intern("c:"+name, func(b *bytes.Buffer) {
		b.WriteByte(tagClass)
		writeU2(b, nameIdx)
	})
}

func (c *Class) nameAndType(name, desc string) uint16 {
	n := c.UTF8(name)
	d := c.UTF8(desc)
	return c.intern("nt:"+name+":"+desc, func(b *bytes.Buffer) {
		b.WriteByte(tagNameAndType)
		writeU2(b, n)
		writeU2(b, d)
	})
}

// MethodRef interns a Methodref constant.
func (c *Class) MethodRef(owner, name, desc string) uint16 {
	return c.memberRef(tagMethodref, owner, name, desc)
}

// InterfaceMethodRef interns an InterfaceMethodref constant.
func (c *Class) InterfaceMethodRef(owner, name, desc string) uint16 {
	return c.memberRef(tagInterfaceMethodref, owner, name, desc)
}

func (c *Class) memberRef(tag byte, owner, name, desc string) uint16 {
	o := c.ClassRef(owner)
	nt := c.nameAndType(name, desc)
	prefix := "m:"
	if tag == tagInterfaceMethodref {
		prefix = "im:"
	}
	return c.intern(prefix+owner+"."+name+desc, func(b *bytes.Buffer) {
		b.WriteByte(tag)
		writeU2(b, o)
		writeU2(b, nt)
	})
}

// InvokeDynamic interns an InvokeDynamic constant with bootstrap index 0.
func (c *Class) InvokeDynamic(name, desc string) uint16 {
	nt := c.nameAndType(name, desc)
	return c.intern("indy:"+name+desc, func(b *bytes.Buffer) {
		b.WriteByte(tagInvokeDynamic)
		writeU2(b, 0)
		writeU2(b, nt)
	})
}

// Field declares a field.
func (c *Class) Field(access uint16, name, desc string) *Class {
	c.fields = append(c.fields, member{access: access, name: c.UTF8(name), desc: c.UTF8(desc)})
	return c
}

// Method declares a method with the given bytecode. A nil code slice
// declares a method without a Code attribute.
func (c *Class) Method(access uint16, name, desc string, code []byte) *Class {
	c.methods = append(c.methods, member{
		access:  access,
		name:    c.UTF8(name),
		desc:    c.UTF8(desc),
		code:    code,
		hasCode: code != nil,
	})
	return c
}

// Bytes serializes the class file.
func (c *Class) Bytes() []byte {
	// Intern the attribute name before the pool is written.
	codeName := c.UTF8("Code")

	var out bytes.Buffer
	writeU4(&out, 0xCAFEBABE)
	writeU2(&out, 0)
	writeU2(&out, 52)
	writeU2(&out, c.count)
	out.Write(c.pool.Bytes())
	writeU2(&out, c.access)
	writeU2(&out, c.name)
	writeU2(&out, c.super)
	writeU2(&out, uint16(len(c.interfaces)))
	for _, i := range c.interfaces {
		writeU2(&out, i)
	}

	writeU2(&out, uint16(len(c.fields)))
	for _, f := range c.fields {
		writeU2(&out, f.access)
		writeU2(&out, f.name)
		writeU2(&out, f.desc)
		writeU2(&out, 0)
	}

	writeU2(&out, uint16(len(c.methods)))
	for _, m := range c.methods {
		writeU2(&out, m.access)
		writeU2(&out, m.name)
		writeU2(&out, m.desc)
		if !m.hasCode {
			writeU2(&out, 0)
			continue
		}
		writeU2(&out, 1)
		writeU2(&out, codeName)
		writeU4(&out, uint32(12+len(m.code)))
		writeU2(&out, 8) // max_stack
		writeU2(&out, 8) // max_locals
		writeU4(&out, uint32(len(m.code)))
		out.Write(m.code)
		writeU2(&out, 0) // exception table
		writeU2(&out, 0) // attributes
	}

	writeU2(&out, 0) // class attributes
	return out.Bytes()
}

func writeU2(b *bytes.Buffer, v uint16) {
	_ = binary.Write(b, binary.BigEndian, v)
}

func writeU4(b *bytes.Buffer, v uint32) {
	_ = binary.Write(b, binary.BigEndian, v)
}
