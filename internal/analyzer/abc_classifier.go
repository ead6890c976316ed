package analyzer

import (
	"github.com/ludo-technologies/jarscn/internal/classfile"
)

// InstructionClassifier accumulates an ABC vector from one method's
// instruction stream. Only stores, invocations, allocations, jumps and
// switches contribute; every other event is ignored.
type InstructionClassifier struct {
	classfile.BaseMethodVisitor

	abc    ABCVector
	onDone func(ABCVector)
}

// NewInstructionClassifier creates a classifier. onDone, if non-nil, receives
// the method's vector when the method ends.
func NewInstructionClassifier(onDone func(ABCVector)) *InstructionClassifier {
	return &InstructionClassifier{onDone: onDone}
}

// ABC returns the vector accumulated so far
func (c *InstructionClassifier) ABC() ABCVector {
	return c.abc
}

// VisitVarInsn counts local variable stores as assignments
func (c *InstructionClassifier) VisitVarInsn(opcode int, varIndex int) {
	if classfile.IsStoreOpcode(opcode) {
		c.abc.Assignments++
	}
}

// VisitIincInsn counts a local increment as an assignment
func (c *InstructionClassifier) VisitIincInsn(varIndex int, increment int) {
	c.abc.Assignments++
}

// VisitMethodInsn counts every invocation as a branch
func (c *InstructionClassifier) VisitMethodInsn(opcode int, owner, name, descriptor string, isInterface bool) {
	c.abc.Branches++
}

// VisitInvokeDynamicInsn counts a dynamic call site as a branch
func (c *InstructionClassifier) VisitInvokeDynamicInsn(name, descriptor string) {
	c.abc.Branches++
}

// VisitTypeInsn counts object allocation (NEW) as a branch
func (c *InstructionClassifier) VisitTypeInsn(opcode int, typeName string) {
	if opcode == classfile.NEW {
		c.abc.Branches++
	}
}

// VisitJumpInsn counts conditional jumps; GOTO and JSR variants are not conditions
func (c *InstructionClassifier) VisitJumpInsn(opcode int, target int) {
	if !classfile.IsUnconditionalJump(opcode) {
		c.abc.Conditions++
	}
}

// VisitTableSwitchInsn counts one condition per explicit case label
func (c *InstructionClassifier) VisitTableSwitchInsn(low, high int32, defaultTarget int, targets []int) {
	c.abc.Conditions += len(targets)
}

// VisitLookupSwitchInsn counts one condition per explicit case label
func (c *InstructionClassifier) VisitLookupSwitchInsn(defaultTarget int, keys []int32, targets []int) {
	c.abc.Conditions += len(targets)
}

func (c *InstructionClassifier) VisitEnd() {
	if c.onDone != nil {
		c.onDone(c.abc)
	}
}
