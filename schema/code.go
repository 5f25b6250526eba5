package schema

import "fmt"

// Level identifies where a script is attached
type Level string

const (
	DatabaseLevel Level = "database"
	TableLevel    Level = "table"
	FieldLevel    Level = "field"
)

// CodeType identifies the schema property holding a script
type CodeType string

const (
	AfterOpen       CodeType = "afterOpen"
	BeforeOpen      CodeType = "beforeOpen"
	GlobalCode      CodeType = "globalCode"
	AfterCreate     CodeType = "afterCreate"
	AfterUpdate     CodeType = "afterUpdate"
	AfterDelete     CodeType = "afterDelete"
	BeforeDelete    CodeType = "beforeDelete"
	CanRead         CodeType = "canRead"
	CanWrite        CodeType = "canWrite"
	CanCreate       CodeType = "canCreate"
	CanDelete       CodeType = "canDelete"
	Printout        CodeType = "printout"
	Formula         CodeType = "fn"
	Constraint      CodeType = "constraint"
	DChoiceValues   CodeType = "dchoiceValues"
	DChoiceCaption  CodeType = "dchoiceCaption"
	DChoiceColor    CodeType = "dchoiceColor"
	DChoiceIcon     CodeType = "dchoiceIcon"
	ReferenceFormat CodeType = "referenceFormat"
	Visibility      CodeType = "visibility"
	OnClick         CodeType = "onClick"
	OnDoubleClick   CodeType = "onDoubleClick"
	Validation      CodeType = "validation"
	Color           CodeType = "color"
)

// Category groups code types by purpose
type Category string

const (
	GlobalCategory        Category = "global"
	TriggerCategory       Category = "trigger"
	FormulaCategory       Category = "formula"
	ButtonCategory        Category = "button"
	VisibilityCategory    Category = "visibility"
	PermissionCategory    Category = "permission"
	DynamicChoiceCategory Category = "dchoice"
	ValidationCategory    Category = "validation"
	ReferenceCategory     Category = "reference"
	OtherCategory         Category = "other"
)

var categories = map[CodeType]Category{
	AfterOpen:       TriggerCategory,
	BeforeOpen:      TriggerCategory,
	GlobalCode:      GlobalCategory,
	AfterCreate:     TriggerCategory,
	AfterUpdate:     TriggerCategory,
	AfterDelete:     TriggerCategory,
	BeforeDelete:    TriggerCategory,
	CanRead:         PermissionCategory,
	CanWrite:        PermissionCategory,
	CanCreate:       PermissionCategory,
	CanDelete:       PermissionCategory,
	Printout:        OtherCategory,
	Formula:         FormulaCategory,
	Constraint:      ValidationCategory,
	DChoiceValues:   DynamicChoiceCategory,
	DChoiceCaption:  DynamicChoiceCategory,
	DChoiceColor:    DynamicChoiceCategory,
	DChoiceIcon:     DynamicChoiceCategory,
	ReferenceFormat: ReferenceCategory,
	Visibility:      VisibilityCategory,
	OnClick:         ButtonCategory,
	OnDoubleClick:   ButtonCategory,
	Validation:      ValidationCategory,
	Color:           OtherCategory,
}

// catalog lists code properties per level in extraction order
var catalog = map[Level][]CodeType{
	DatabaseLevel: {AfterOpen, BeforeOpen, GlobalCode},
	TableLevel:    {AfterCreate, AfterUpdate, AfterDelete, BeforeDelete, CanRead, CanWrite, CanCreate, CanDelete, Printout},
	FieldLevel: {Formula, AfterUpdate, AfterCreate, Constraint, DChoiceValues, DChoiceCaption, DChoiceColor, DChoiceIcon,
		ReferenceFormat, Visibility, OnClick, OnDoubleClick, CanRead, CanWrite, Validation, Color},
}

// Category returns the purpose of the code type
func (t CodeType) Category() Category {
	if category, ok := categories[t]; ok {
		return category
	}
	return OtherCategory
}

// CodeTypes returns code properties recognised at the given level
func CodeTypes(level Level) []CodeType {
	return catalog[level]
}

// ParseCodeType converts a raw schema property name into a CodeType valid at the level
func ParseCodeType(level Level, raw string) (CodeType, error) {
	for _, candidate := range catalog[level] {
		if string(candidate) == raw {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("unsupported %v code type: %q", level, raw)
}

// ParseCategory converts a stored category name into a Category
func ParseCategory(raw string) (Category, error) {
	switch category := Category(raw); category {
	case GlobalCategory, TriggerCategory, FormulaCategory, ButtonCategory, VisibilityCategory, PermissionCategory,
		DynamicChoiceCategory, ValidationCategory, ReferenceCategory, OtherCategory:
		return category, nil
	}
	return "", fmt.Errorf("unsupported code category: %q", raw)
}
