// Package iocli абстрагирует ввод/вывод CLI-команд.
package iocli

//go:generate moq -out io_mock.go . IO

// IO консольный ввод/вывод. Write позволяет передавать IO
// в text/template и text/tabwriter.
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	Write(p []byte) (n int, err error)
}
