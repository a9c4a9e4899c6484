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

package pdf

import (
	"bytes"
	"io"
	"maps"
)

// Data is an in-memory representation of the objects of a PDF document.
// It implements the [Getter] interface.
type Data struct {
	objects map[Reference]Object
	lastRef uint32
}

// NewData returns a new, empty object store.
func NewData() *Data {
	return &Data{
		objects: map[Reference]Object{},
	}
}

// Alloc allocates a new object number for an indirect object.
func (d *Data) Alloc() Reference {
	for {
		d.lastRef++
		ref := NewReference(d.lastRef, 0)
		if _, ok := d.objects[ref]; !ok {
			return ref
		}
	}
}

// Get implements the [Getter] interface.
// Stream data is rewound each time the stream is returned.
func (d *Data) Get(ref Reference) (Object, error) {
	obj := d.objects[ref]
	if s, ok := obj.(*Stream); ok {
		if ss, ok := s.R.(io.Seeker); ok {
			_, err := ss.Seek(0, io.SeekStart)
			if err != nil {
				return nil, err
			}
		}
	}
	return obj, nil
}

// Put stores an object under the given reference.
// Storing nil removes the object.
func (d *Data) Put(ref Reference, obj Object) {
	if obj == nil {
		delete(d.objects, ref)
	} else {
		d.objects[ref] = obj
	}
}

// Add stores obj as a new indirect object and returns the reference.
func (d *Data) Add(obj Object) Reference {
	ref := d.Alloc()
	d.Put(ref, obj)
	return ref
}

// AddStream stores a new stream object with the given dictionary and
// (already encoded) data.  A /Length entry is added to a copy of dict.
func (d *Data) AddStream(dict Dict, data []byte) Reference {
	streamDict := maps.Clone(dict)
	if streamDict == nil {
		streamDict = Dict{}
	}
	streamDict["Length"] = Integer(len(data))
	return d.Add(&Stream{
		Dict: streamDict,
		R:    bytes.NewReader(data),
	})
}
