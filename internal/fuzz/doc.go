// Package fuzztests houses Go fuzz harnesses for the formatting pipeline
// (source -> lexer -> parser -> align -> render). They guard against panics
// on arbitrary input and check that alignment only ever moves whitespace.
//
// Назначение: прогонять произвольные байты через лексер и форматер и
// проверять инварианты раскладки.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser,
// internal/align, internal/format, internal/testkit.
package fuzztests
