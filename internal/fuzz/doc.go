// Package fuzztests houses Go fuzz harnesses for the compile path
// (source -> lexer -> parser -> bridge). Their goal is to guard against
// panics and hangs on arbitrary inputs.
//
// Назначение: прогонять случайные байты через лексер, парсер и весь bridge.Compile.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
