// Package viewstate holds the state each screen owns and the pure reducers
// that move it from one user event to the next. Reducers never modify the state
// they are given.
package viewstate
