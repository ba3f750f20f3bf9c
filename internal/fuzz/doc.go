// Package fuzztests houses Go fuzz harnesses that exercise the loom host
// boundary (snapshot JSON -> program model). Its goal is to smoke test
// robustness and guard against panics or allocator explosions on arbitrary
// inputs.
//
// Назначение: запускать fuzz-обработчики, которые скармливают байты
// загрузчику снапшотов и парсеру аннотаций типов.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/program, internal/testkit.

package fuzztests
