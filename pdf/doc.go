// seehuhn.de/go/pdffont - font resolution for PDF rendering
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package pdf provides the object model used by the font resolution code.
//
// PDF objects are represented by the types [Bool], [Integer], [Real],
// [String], [Name], [Array], [Dict], [*Stream] and [Reference].  Indirect
// objects are resolved using a [Getter]; the helper functions [GetDict],
// [GetArray] etc. resolve references and check the type of the result.
// [Data] is an in-memory Getter, which can be used to build documents in
// code.
//
// Errors are reported using the sentinel values in this package, for
// example [ErrTypeCheck] and [ErrInvalidFont].  Callers should use
// [errors.Is] to check for these.
package pdf
