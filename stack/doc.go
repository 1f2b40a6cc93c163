/*
Package stack implements a singly-linked list with exclusive ownership of its
nodes, used as a stack: values are pushed, popped and peeked at the head.

Every node is owned by exactly one reference, either its predecessor or the list
head. Nodes are therefore never shared and cycles cannot occur. Dropping a list
releases its nodes one after the other, so even very long lists are torn down
without deep recursion.

	s := stack.New[int]()
	s.Push(1)
	s.Push(2)
	top := s.Pop()           // Just(2)
	s.Drop()

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package stack

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fp.stack'.
func tracer() tracing.Trace {
	return tracing.Select("fp.stack")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("stack: "+msg, msgargs...)
		panic(msg)
	}
}
