package classfile

// ClassVisitor receives the structural events of one class file.
//
// Events arrive in a fixed order: Visit exactly once, then zero or more
// VisitField calls, then zero or more VisitMethod calls, then VisitEnd.
// The instruction stream of a method is delivered to the MethodVisitor
// returned by VisitMethod and is always closed with VisitEnd before the
// next class-level event.
type ClassVisitor interface {
	// Visit declares the class. superName is empty for the root of the type universe.
	Visit(version uint16, access uint16, name, superName string, interfaces []string)

	// VisitField declares one field.
	VisitField(access uint16, name, descriptor string)

	// VisitMethod declares one method. Returning nil skips the method body.
	VisitMethod(access uint16, name, descriptor string) MethodVisitor

	// VisitEnd signals the end of the class.
	VisitEnd()
}

// MethodVisitor receives the instruction events of one method body.
// Jump and switch targets are absolute bytecode offsets.
type MethodVisitor interface {
	VisitInsn(opcode int)
	VisitIntInsn(opcode int, operand int)
	VisitVarInsn(opcode int, varIndex int)
	VisitIincInsn(varIndex int, increment int)
	VisitLdcInsn(opcode int, index int)
	VisitFieldInsn(opcode int, owner, name, descriptor string)
	VisitMethodInsn(opcode int, owner, name, descriptor string, isInterface bool)
	VisitInvokeDynamicInsn(name, descriptor string)
	VisitTypeInsn(opcode int, typeName string)
	VisitJumpInsn(opcode int, target int)
	VisitTableSwitchInsn(low, high int32, defaultTarget int, targets []int)
	VisitLookupSwitchInsn(defaultTarget int, keys []int32, targets []int)
	VisitMultiANewArrayInsn(descriptor string, dimensions int)
	VisitEnd()
}

// BaseMethodVisitor ignores every event. Embed it to implement only the
// callbacks a consumer cares about.
type BaseMethodVisitor struct{}

func (BaseMethodVisitor) VisitInsn(int) {}
func (BaseMethodVisitor) VisitIntInsn(int, int) {}
func (BaseMethodVisitor) VisitVarInsn(int, int) {}
func (BaseMethodVisitor) VisitIincInsn(int, int) {}
func (BaseMethodVisitor) VisitLdcInsn(int, int) {}
func (BaseMethodVisitor) VisitFieldInsn(int, string, string, string) {}
func (BaseMethodVisitor) VisitMethodInsn(int, string, string, string, bool) {}
func (BaseMethodVisitor) VisitInvokeDynamicInsn(string, string) {}
func (BaseMethodVisitor) VisitTypeInsn(int, string) {}
func (BaseMethodVisitor) VisitJumpInsn(int, int) {}
func (BaseMethodVisitor) VisitTableSwitchInsn(int32, int32, int, []int) {}
func (BaseMethodVisitor) VisitLookupSwitchInsn(int, []int32, []int) {}
func (BaseMethodVisitor) VisitMultiANewArrayInsn(string, int) {}
func (BaseMethodVisitor) VisitEnd() {}
