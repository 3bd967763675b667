package employee

// Employee - Reference data looked up at login. The ID is the code the
// employee types at the till; it is never created or changed by this service.
type Employee struct {
	ID          string
	DisplayName string
}
