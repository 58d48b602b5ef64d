// Package fuzztests houses Go fuzz harnesses for the compile pipeline
// (source -> lexer -> parser -> codegen). They guard against panics and
// hangs on arbitrary input.
//
// Назначение: прогонять произвольные байты через FileSet, лексер, парсер и
// генератор.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
