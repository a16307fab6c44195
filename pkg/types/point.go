package types

type Pointf64 struct {
	X, Y float64
}
