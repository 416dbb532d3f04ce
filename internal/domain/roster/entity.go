package roster

// Person is one enrolled member of a class roster. Roster order is enrollment order
// and is preserved by every provider.
type Person struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Department *string `json:"department"`
	ClassCode  string  `json:"class_code"`
}
