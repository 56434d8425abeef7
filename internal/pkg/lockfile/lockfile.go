// lockfile — гарантия единственного экземпляра на хост.
//
// Краулер запускается по расписанию; наложившиеся запуски делили бы файлы
// чекпоинта и фида, поэтому перед работой берётся эксклюзивная файловая
// блокировка и держится до конца процесса.
package lockfile

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrLocked — блокировка занята другим экземпляром.
var ErrLocked = errors.New("another instance is already running")

// Lock — удерживаемая файловая блокировка.
type Lock struct {
	fl *flock.Flock
}

// Acquire пытается взять блокировку без ожидания.
//
// Ошибки:
//   - ErrLocked — блокировку держит другой процесс;
//   - прочие — сбой файловой системы.
func Acquire(path string) (*Lock, error) {
	const op = "lockfile.Acquire"

	fl := flock.New(path)

	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrLocked)
	}

	return &Lock{fl: fl}, nil
}

// Release отпускает блокировку.
func (l *Lock) Release() error {
	return l.fl.Unlock()
}
