package types

// Rating is kept as a float because drafts routinely emit fractional values;
// the renderer clamps to [0,5] and rounds before drawing discrete stars.
type Testimonial struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Review string  `json:"review"`
	Rating float64 `json:"rating"`
	Avatar string  `json:"avatar,omitempty"`
	Title  string  `json:"title,omitempty"`
}
