// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slice adds generic helpers the standard [slices] package lacks.
package slice

// Map applies transform to every element of input.
func Map[T, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	out := make([]U, len(input))
	for i, v := range input {
		out[i] = transform(v)
	}
	return out
}

// Difference returns the elements of a that are not in b, in order.
func Difference[T comparable](a, b []T) []T {
	exclude := make(map[T]struct{}, len(b))
	for _, v := range b {
		exclude[v] = struct{}{}
	}

	var out []T
	for _, v := range a {
		if _, ok := exclude[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}
