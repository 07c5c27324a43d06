// Package fuzztests houses Go fuzz harnesses that exercise the hlslc front
// end (source -> lexer -> grammar -> semantic actions). They smoke test
// robustness and guard against panics or hangs on arbitrary inputs.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер,
// парсер и sema.Context до Finish.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser,
// internal/sema, internal/diag.

package fuzztests
