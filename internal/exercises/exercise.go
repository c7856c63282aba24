package exercises

type Exercise struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
