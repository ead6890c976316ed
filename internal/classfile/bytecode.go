package classfile

import (
	"fmt"
)

// Accept replays the class as visitor events: the class declaration, every
// field, every method (with its instruction stream), then VisitEnd.
// A malformed method body aborts the replay with an error; events already
// delivered are not retracted, so callers should discard the visitor's state.
func (cf *ClassFile) Accept(v ClassVisitor) error {
	interfaces := make([]string, len(cf.Interfaces))
	copy(interfaces, cf.Interfaces)
	v.Visit(cf.MajorVersion, cf.AccessFlags, cf.Name, cf.SuperName, interfaces)

	for _, f := range cf.Fields {
		v.VisitField(f.AccessFlags, f.Name, f.Descriptor)
	}

	for _, m := range cf.Methods {
		mv := v.VisitMethod(m.AccessFlags, m.Name, m.Descriptor)
		if mv == nil {
			continue
		}
		if m.Code != nil {
			if err := walkCode(m.Code, cf.ConstantPool, mv); err != nil {
				return fmt.Errorf("classfile: %s.%s%s: %w", cf.Name, m.Name, m.Descriptor, err)
			}
		}
		mv.VisitEnd()
	}

	v.VisitEnd()
	return nil
}

// walkCode decodes one bytecode array. Every opcode yields exactly one event.
func walkCode(code []byte, pool ConstantPool, mv MethodVisitor) error {
	r := newByteReader(code)

	for r.pos < len(code) {
		pc := r.pos
		op := int(r.u1())

		switch {
		case op >= ILOAD && op <= ALOAD, op >= ISTORE && op <= ASTORE:
			mv.VisitVarInsn(op, int(r.u1()))

		case op >= ILOAD_0 && op <= ALOAD_3:
			n := op - ILOAD_0
			mv.VisitVarInsn(ILOAD+n/4, n%4)

		case op >= ISTORE_0 && op <= ASTORE_3:
			n := op - ISTORE_0
			mv.VisitVarInsn(ISTORE+n/4, n%4)

		case op == RET:
			mv.VisitVarInsn(op, int(r.u1()))

		case op == IINC:
			index := int(r.u1())
			inc := int(int8(r.u1()))
			mv.VisitIincInsn(index, inc)

		case op == BIPUSH, op == NEWARRAY:
			mv.VisitIntInsn(op, int(int8(r.u1())))

		case op == SIPUSH:
			mv.VisitIntInsn(op, int(int16(r.u2())))

		case op == LDC:
			mv.VisitLdcInsn(op, int(r.u1()))

		case op == LDC_W, op == LDC2_W:
			mv.VisitLdcInsn(op, int(r.u2()))

		case op >= IFEQ && op <= JSR, op == IFNULL, op == IFNONNULL:
			offset := int(int16(r.u2()))
			mv.VisitJumpInsn(op, pc+offset)

		case op == GOTO_W, op == JSR_W:
			offset := int(int32(r.u4()))
			mv.VisitJumpInsn(op, pc+offset)

		case op == TABLESWITCH:
			r.skip(switchPadding(pc))
			dflt := int(int32(r.u4()))
			low := int32(r.u4())
			high := int32(r.u4())
			if r.err != nil {
				return r.err
			}
			if high < low {
				return fmt.Errorf("tableswitch at %d: high %d < low %d", pc, high, low)
			}
			n := int(int64(high) - int64(low) + 1)
			if !r.need(n * 4) {
				return r.err
			}
			targets := make([]int, n)
			for i := range targets {
				targets[i] = pc + int(int32(r.u4()))
			}
			mv.VisitTableSwitchInsn(low, high, pc+dflt, targets)

		case op == LOOKUPSWITCH:
			r.skip(switchPadding(pc))
			dflt := int(int32(r.u4()))
			npairs := int(int32(r.u4()))
			if r.err != nil {
				return r.err
			}
			if npairs < 0 {
				return fmt.Errorf("lookupswitch at %d: negative pair count %d", pc, npairs)
			}
			if !r.need(npairs * 8) {
				return r.err
			}
			keys := make([]int32, npairs)
			targets := make([]int, npairs)
			for i := 0; i < npairs; i++ {
				keys[i] = int32(r.u4())
				targets[i] = pc + int(int32(r.u4()))
			}
			mv.VisitLookupSwitchInsn(pc+dflt, keys, targets)

		case op >= GETSTATIC && op <= PUTFIELD:
			owner, name, desc, _, err := pool.MemberRef(r.u2())
			if r.err != nil {
				return r.err
			}
			if err != nil {
				return fmt.Errorf("field insn at %d: %w", pc, err)
			}
			mv.VisitFieldInsn(op, owner, name, desc)

		case op >= INVOKEVIRTUAL && op <= INVOKEINTERFACE:
			owner, name, desc, itf, err := pool.MemberRef(r.u2())
			if op == INVOKEINTERFACE {
				r.skip(2) // count, 0
			}
			if r.err != nil {
				return r.err
			}
			if err != nil {
				return fmt.Errorf("method insn at %d: %w", pc, err)
			}
			mv.VisitMethodInsn(op, owner, name, desc, itf)

		case op == INVOKEDYNAMIC:
			name, desc, err := pool.InvokeDynamic(r.u2())
			r.skip(2)
			if r.err != nil {
				return r.err
			}
			if err != nil {
				return fmt.Errorf("invokedynamic at %d: %w", pc, err)
			}
			mv.VisitInvokeDynamicInsn(name, desc)

		case op == NEW, op == ANEWARRAY, op == CHECKCAST, op == INSTANCEOF:
			typeName, err := pool.ClassName(r.u2())
			if r.err != nil {
				return r.err
			}
			if err != nil {
				return fmt.Errorf("type insn at %d: %w", pc, err)
			}
			mv.VisitTypeInsn(op, typeName)

		case op == MULTIANEWARRAY:
			desc, err := pool.ClassName(r.u2())
			dims := int(r.u1())
			if r.err != nil {
				return r.err
			}
			if err != nil {
				return fmt.Errorf("multianewarray at %d: %w", pc, err)
			}
			mv.VisitMultiANewArrayInsn(desc, dims)

		case op == WIDE:
			if err := walkWide(r, mv); err != nil {
				return fmt.Errorf("wide at %d: %w", pc, err)
			}

		case op > JSR_W:
			return fmt.Errorf("undefined opcode 0x%02x at %d", op, pc)

		default:
			mv.VisitInsn(op)
		}

		if r.err != nil {
			return r.err
		}
	}
	return nil
}

func walkWide(r *byteReader, mv MethodVisitor) error {
	op := int(r.u1())
	index := int(r.u2())
	if r.err != nil {
		return r.err
	}
	switch {
	case op == IINC:
		inc := int(int16(r.u2()))
		if r.err != nil {
			return r.err
		}
		mv.VisitIincInsn(index, inc)
	case op >= ILOAD && op <= ALOAD, op >= ISTORE && op <= ASTORE, op == RET:
		mv.VisitVarInsn(op, index)
	default:
		return fmt.Errorf("opcode 0x%02x cannot be widened", op)
	}
	return nil
}

// switchPadding returns the number of bytes between a switch opcode at pc
// and its first 4-byte aligned operand.
func switchPadding(pc int) int {
	return (4 - (pc+1)%4) % 4
}
