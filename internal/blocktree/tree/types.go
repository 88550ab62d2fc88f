package tree

import "time"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Metrics observes tree operations.
	Metrics interface {
		ObserveInsert(err error, started time.Time)
		ObserveVerify(operation string, ok bool, started time.Time)
		SetNodes(count int)
	}
)
