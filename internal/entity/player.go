package entity

type Player struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
