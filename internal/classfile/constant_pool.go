package classfile

import (
	"fmt"
	"unicode/utf16"
)

// Constant pool tags.
const (
	TagUtf8               = 1
	TagInteger            = 3
	TagFloat              = 4
	TagLong               = 5
	TagDouble             = 6
	TagClass              = 7
	TagString             = 8
	TagFieldref           = 9
	TagMethodref          = 10
	TagInterfaceMethodref = 11
	TagNameAndType        = 12
	TagMethodHandle       = 15
	TagMethodType         = 16
	TagDynamic            = 17
	TagInvokeDynamic      = 18
	TagModule             = 19
	TagPackage            = 20
)

// Constant is one constant pool slot. Only the fields relevant to a tag are set:
// Utf8 uses Text; Class, String, MethodType, Module and Package use Index1;
// member references, NameAndType, Dynamic and InvokeDynamic use Index1 and Index2.
type Constant struct {
	Tag    uint8
	Text   string
	Index1 uint16
	Index2 uint16
}

// ConstantPool is indexed from 1; slot 0 and the slot after a long or double are unused.
type ConstantPool []Constant

func readConstantPool(r *byteReader) (ConstantPool, error) {
	count := int(r.u2())
	if r.err != nil {
		return nil, r.err
	}
	if count == 0 {
		return nil, fmt.Errorf("classfile: constant pool count is zero")
	}

	pool := make(ConstantPool, count)
	for i := 1; i < count; i++ {
		tag := r.u1()
		c := Constant{Tag: tag}
		switch tag {
		case TagUtf8:
			n := int(r.u2())
			c.Text = decodeModifiedUTF8(r.bytes(n))
		case TagInteger, TagFloat:
			r.skip(4)
		case TagLong, TagDouble:
			r.skip(8)
		case TagClass, TagString, TagMethodType, TagModule, TagPackage:
			c.Index1 = r.u2()
		case TagFieldref, TagMethodref, TagInterfaceMethodref, TagNameAndType, TagDynamic, TagInvokeDynamic:
			c.Index1 = r.u2()
			c.Index2 = r.u2()
		case TagMethodHandle:
			r.skip(1)
			c.Index1 = r.u2()
		default:
			if r.err != nil {
				return nil, r.err
			}
			return nil, fmt.Errorf("classfile: unknown constant pool tag %d at index %d", tag, i)
		}
		if r.err != nil {
			return nil, r.err
		}
		pool[i] = c
		if tag == TagLong || tag == TagDouble {
			i++
		}
	}
	return pool, nil
}

func (p ConstantPool) entry(index uint16, tags ...uint8) (Constant, error) {
	if index == 0 || int(index) >= len(p) {
		return Constant{}, fmt.Errorf("classfile: constant pool index %d out of range", index)
	}
	c := p[index]
	for _, t := range tags {
		if c.Tag == t {
			return c, nil
		}
	}
	return Constant{}, fmt.Errorf("classfile: constant pool index %d has tag %d, want one of %v", index, c.Tag, tags)
}

// UTF8 returns the text of a Utf8 constant.
func (p ConstantPool) UTF8(index uint16) (string, error) {
	c, err := p.entry(index, TagUtf8)
	if err != nil {
		return "", err
	}
	return c.Text, nil
}

// ClassName returns the internal (slash-separated) name referenced by a Class constant.
func (p ConstantPool) ClassName(index uint16) (string, error) {
	c, err := p.entry(index, TagClass)
	if err != nil {
		return "", err
	}
	return p.UTF8(c.Index1)
}

// NameAndType returns the name and descriptor of a NameAndType constant.
func (p ConstantPool) NameAndType(index uint16) (string, string, error) {
	c, err := p.entry(index, TagNameAndType)
	if err != nil {
		return "", "", err
	}
	name, err := p.UTF8(c.Index1)
	if err != nil {
		return "", "", err
	}
	desc, err := p.UTF8(c.Index2)
	if err != nil {
		return "", "", err
	}
	return name, desc, nil
}

// MemberRef resolves a field, method or interface method reference.
// isInterface is true for InterfaceMethodref constants.
func (p ConstantPool) MemberRef(index uint16) (owner, name, descriptor string, isInterface bool, err error) {
	c, err := p.entry(index, TagFieldref, TagMethodref, TagInterfaceMethodref)
	if err != nil {
		return "", "", "", false, err
	}
	owner, err = p.ClassName(c.Index1)
	if err != nil {
		return "", "", "", false, err
	}
	name, descriptor, err = p.NameAndType(c.Index2)
	if err != nil {
		return "", "", "", false, err
	}
	return owner, name, descriptor, c.Tag == TagInterfaceMethodref, nil
}

// InvokeDynamic resolves the NameAndType of an InvokeDynamic constant.
func (p ConstantPool) InvokeDynamic(index uint16) (string, string, error) {
	c, err := p.entry(index, TagInvokeDynamic)
	if err != nil {
		return "", "", err
	}
	return p.NameAndType(c.Index2)
}

// decodeModifiedUTF8 decodes the JVM's modified UTF-8: NUL is encoded as
// 0xC0 0x80 and supplementary characters as surrogate pairs of 3 bytes each.
// Malformed sequences decode byte by byte instead of failing.
func decodeModifiedUTF8(b []byte) string {
	ascii := true
	for _, c := range b {
		if c >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return string(b)
	}

	units := make([]uint16, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c < 0x80:
			units = append(units, uint16(c))
			i++
		case c&0xe0 == 0xc0 && i+1 < len(b):
			units = append(units, uint16(c&0x1f)<<6|uint16(b[i+1]&0x3f))
			i += 2
		case c&0xf0 == 0xe0 && i+2 < len(b):
			units = append(units, uint16(c&0x0f)<<12|uint16(b[i+1]&0x3f)<<6|uint16(b[i+2]&0x3f))
			i += 3
		default:
			units = append(units, uint16(c))
			i++
		}
	}
	return string(utf16.Decode(units))
}
