// This file is part of go-mc/server project.
// Copyright (C) 2023.  Tnze
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package destination

import (
	"errors"
	"fmt"

	"FlowyWarp/safety"
)

var (
	ErrUnknownKind        = errors.New("unknown destination kind")
	ErrInvalidParams      = errors.New("invalid destination parameters")
	ErrPreconditionFailed = errors.New("destination precondition failed")
	ErrNoSafeLocation     = safety.ErrNoSafeLocation
)

// UnknownKindError - ідентифікатор перед ':' ніхто не зареєстрував
type UnknownKindError struct {
	Kind string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown destination kind %q", e.Kind)
}

func (e *UnknownKindError) Is(target error) bool { return target == ErrUnknownKind }

// InvalidParamsError - вид знайдено, але він не зміг розібрати параметри.
// Detail - повідомлення самого виду без змін.
type InvalidParamsError struct {
	Kind   string
	Detail string
	Err    error
}

func (e *InvalidParamsError) Error() string {
	return fmt.Sprintf("invalid %s destination: %s", e.Kind, e.Detail)
}

func (e *InvalidParamsError) Is(target error) bool { return target == ErrInvalidParams }

func (e *InvalidParamsError) Unwrap() error { return e.Err }
