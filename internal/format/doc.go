// Package format runs the per-file pipeline: lex, parse, align and render.
//
// Назначение: один файл на входе, отформатированные байты и статистика на выходе.
// Не делает: обход каталогов, запись на диск, кеширование (см. internal/driver).
// Зависимости: internal/lexer, internal/parser, internal/align, internal/disabler.
package format
