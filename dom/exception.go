package dom

import "fmt"

// Exception mirrors a DOMException: Name identifies the kind of failure.
type Exception struct {
	Name    string
	Message string
}

var (
	ErrInvalidCharacter = &Exception{Name: "InvalidCharacterError"}
	ErrSyntax           = &Exception{Name: "SyntaxError"}
	ErrHierarchyRequest = &Exception{Name: "HierarchyRequestError"}
)

func (e *Exception) Error() string {
	if e.Message == "" {
		return e.Name
	}
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// Is reports whether target is an Exception with the same Name.
func (e *Exception) Is(target error) bool {
	t, ok := target.(*Exception)
	return ok && t.Name == e.Name
}

func exception(name, format string, args ...interface{}) *Exception {
	return &Exception{Name: name, Message: fmt.Sprintf(format, args...)}
}
