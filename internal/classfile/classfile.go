// Package classfile decodes JVM class files and replays their structure and
// bytecode as a stream of visitor events.
package classfile

import (
	"fmt"
)

// Magic is the first four bytes of every class file.
const Magic = 0xCAFEBABE

// ClassFile is the decoded form of one class file. Method bodies are kept as
// raw bytecode and only decoded into instructions by Accept.
type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	ConstantPool ConstantPool
	AccessFlags  uint16
	Name         string
	SuperName    string
	Interfaces   []string
	Fields       []Member
	Methods      []Member
}

// Member is a field or a method. Code is nil for fields and for methods
// without a body (abstract and native methods).
type Member struct {
	AccessFlags uint16
	Name        string
	Descriptor  string
	Code        []byte
}

// IsInterface reports whether the class is an interface (annotations included).
func (cf *ClassFile) IsInterface() bool {
	return cf.AccessFlags&AccInterface != 0
}

// Parse decodes a class file.
func Parse(data []byte) (*ClassFile, error) {
	r := newByteReader(data)

	magic := r.u4()
	if r.err != nil {
		return nil, r.err
	}
	if magic != Magic {
		return nil, fmt.Errorf("classfile: bad magic 0x%08X", magic)
	}

	cf := &ClassFile{
		MinorVersion: r.u2(),
		MajorVersion: r.u2(),
	}
	if r.err != nil {
		return nil, r.err
	}

	pool, err := readConstantPool(r)
	if err != nil {
		return nil, err
	}
	cf.ConstantPool = pool

	cf.AccessFlags = r.u2()
	thisIndex := r.u2()
	superIndex := r.u2()
	if r.err != nil {
		return nil, r.err
	}

	if cf.Name, err = pool.ClassName(thisIndex); err != nil {
		return nil, fmt.Errorf("classfile: this_class: %w", err)
	}
	if superIndex != 0 {
		if cf.SuperName, err = pool.ClassName(superIndex); err != nil {
			return nil, fmt.Errorf("classfile: super_class: %w", err)
		}
	}

	interfaceCount := int(r.u2())
	for i := 0; i < interfaceCount && r.err == nil; i++ {
		name, err := pool.ClassName(r.u2())
		if r.err != nil {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("classfile: interface %d: %w", i, err)
		}
		cf.Interfaces = append(cf.Interfaces, name)
	}
	if r.err != nil {
		return nil, r.err
	}

	if cf.Fields, err = readMembers(r, pool, false); err != nil {
		return nil, fmt.Errorf("classfile: fields: %w", err)
	}
	if cf.Methods, err = readMembers(r, pool, true); err != nil {
		return nil, fmt.Errorf("classfile: methods: %w", err)
	}

	// Class-level attributes carry nothing the analyzer needs; they are
	// still walked so a truncated tail is reported.
	if err := skipAttributes(r); err != nil {
		return nil, fmt.Errorf("classfile: attributes: %w", err)
	}

	return cf, nil
}

func readMembers(r *byteReader, pool ConstantPool, methods bool) ([]Member, error) {
	count := int(r.u2())
	if r.err != nil {
		return nil, r.err
	}

	members := make([]Member, 0, count)
	for i := 0; i < count; i++ {
		m := Member{AccessFlags: r.u2()}
		nameIndex := r.u2()
		descIndex := r.u2()
		attrCount := int(r.u2())
		if r.err != nil {
			return nil, r.err
		}

		var err error
		if m.Name, err = pool.UTF8(nameIndex); err != nil {
			return nil, err
		}
		if m.Descriptor, err = pool.UTF8(descIndex); err != nil {
			return nil, err
		}

		for j := 0; j < attrCount; j++ {
			attrName := r.u2()
			length := int(r.u4())
			body := r.bytes(length)
			if r.err != nil {
				return nil, r.err
			}
			if !methods {
				continue
			}
			name, err := pool.UTF8(attrName)
			if err != nil {
				return nil, err
			}
			if name == "Code" {
				code, err := readCode(body)
				if err != nil {
					return nil, fmt.Errorf("%s%s: %w", m.Name, m.Descriptor, err)
				}
				m.Code = code
			}
		}
		members = append(members, m)
	}
	return members, nil
}

// readCode extracts the bytecode array from a Code attribute body.
func readCode(body []byte) ([]byte, error) {
	r := newByteReader(body)
	r.skip(4) // max_stack, max_locals
	length := int(r.u4())
	code := r.bytes(length)
	if r.err != nil {
		return nil, r.err
	}
	return code, nil
}

func skipAttributes(r *byteReader) error {
	count := int(r.u2())
	for i := 0; i < count && r.err == nil; i++ {
		r.skip(2)
		r.skip(int(r.u4()))
	}
	return r.err
}
