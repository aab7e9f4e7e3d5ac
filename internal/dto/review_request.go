package dto

// ReviewRequest is the payload of POST /reviews. Rating is bound as a float
// so that fractional values reach validation instead of failing the bind;
// anything non-integral is rejected there.
type ReviewRequest struct {
	ProductID string  `json:"productId"`
	UserName  string  `json:"userName"`
	Rating    float64 `json:"rating"`
	Comment   string  `json:"comment"`
}
