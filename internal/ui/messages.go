package ui

import (
	"ytcatalog/internal/catalog"
	"ytcatalog/internal/progress"
)

type updateMsg struct {
	U progress.Update
}

type logMsg struct {
	L progress.Log
}

type resultMsg struct {
	R progress.Result
}

type exportDoneMsg struct {
	Out catalog.Exported
	Err error
}

type quitMsg struct{}
