// Package clock provides a tiny time abstraction.
//
// Code that stamps records (created_at and friends) depends on Clocker so
// tests can pin the time with Fixed.
package clock
