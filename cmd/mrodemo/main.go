// Command mrodemo builds a small multiple-inheritance class hierarchy and
// prints each class's method resolution order, to exercise pkg/classtable
// and pkg/mro end to end outside of their test suites.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/oolang/mro/pkg/classtable"
	"github.com/oolang/mro/pkg/mro"
)

func main() {
	log.SetOutput(os.Stderr)

	env := classtable.NewEnvironment(mro.WithDefaultAlgorithm("c3"))

	must(define(env, "O"))
	must(define(env, "A", "O"))
	must(define(env, "B", "O"))
	must(define(env, "C", "O"))
	must(define(env, "D", "O"))
	must(define(env, "E", "O"))
	must(define(env, "K1", "A", "B", "C"))
	must(define(env, "K2", "D", "B", "E"))
	must(define(env, "K3", "D", "A"))
	must(define(env, "Z", "K1", "K2", "K3"))

	for _, name := range []string{"Z", "K1", "K2", "K3"} {
		class, ok := env.Resolve(name)
		if !ok {
			log.Fatalf("mrodemo: %s not defined", name)
		}
		lin, err := env.MRO().LinearISA(class)
		if err != nil {
			log.Fatalf("mrodemo: linearizing %s: %v", name, err)
		}
		fmt.Printf("%-4s %v\n", name, lin.Names)
	}
}

func define(env *classtable.Environment, name string, parents ...string) error {
	_, err := env.DefineClass(name, parents...)
	return err
}

func must(err error) {
	if err != nil {
		log.Fatalf("mrodemo: %v", err)
	}
}
