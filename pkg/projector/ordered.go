// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package projector

import "slices"

type ordered[T any] struct {
	item     T
	priority int
	appended bool
}

// OrderedList is a priority-ordered sequence. Items inserted with a priority
// sit before every appended item.
type OrderedList[T any] struct {
	items []ordered[T]
}

// Insert places item after every prioritized element whose priority is less
// than or equal to priority.
func (l *OrderedList[T]) Insert(item T, priority int) {
	i := 0
	for i < len(l.items) && !l.items[i].appended && l.items[i].priority <= priority {
		i++
	}
	l.items = slices.Insert(l.items, i, ordered[T]{item: item, priority: priority})
}

// Append places item at the end.
func (l *OrderedList[T]) Append(item T) {
	l.items = append(l.items, ordered[T]{item: item, appended: true})
}

// Add inserts with the given priority, or appends when priority is nil.
func (l *OrderedList[T]) Add(item T, priority *int) {
	if priority == nil {
		l.Append(item)
		return
	}
	l.Insert(item, *priority)
}

// Len returns the number of items.
func (l *OrderedList[T]) Len() int {
	return len(l.items)
}

// Items returns the items in order.
func (l *OrderedList[T]) Items() []T {
	out := make([]T, len(l.items))
	for i, o := range l.items {
		out[i] = o.item
	}
	return out
}
