// Package region lays out growable stacks inside reserved memory.
//
// A region is reserved in one piece and split into a no-access gap at each end
// and the stack in between. Only the top of the stack is committed at first;
// Grow commits more as the stack deepens. CheckAccess tells a fault handler
// whether an address is inside the stack, in the overflow gap, or unrelated.
//
// This package computes layouts and manages commit state. Entering, saving and
// restoring stacks is left to the engine.
package region
