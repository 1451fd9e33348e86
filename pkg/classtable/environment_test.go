package classtable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefineClassAndResolve(t *testing.T) {
	env := NewEnvironment()

	_, err := env.DefineClass("Animal")
	require.NoError(t, err)
	_, err = env.DefineClass("Dog", "Animal")
	require.NoError(t, err)

	resolved, ok := env.Resolve("Dog")
	require.True(t, ok)
	require.Equal(t, []string{"Animal"}, resolved.ParentNames())
}

func TestNewObjectInitializesVarsBaseFirst(t *testing.T) {
	env := NewEnvironment()
	_, err := env.DefineClass("Animal")
	require.NoError(t, err)
	_, err = env.DefineClass("Dog", "Animal")
	require.NoError(t, err)

	defaults := map[string]map[string]any{
		"Animal": {"legs": 4, "alive": true},
		"Dog":    {"legs": 4, "breed": "mutt"},
	}

	obj, err := env.NewObject("Dog", defaults)
	require.NoError(t, err)

	breed, ok := obj.Get("breed")
	require.True(t, ok)
	require.Equal(t, "mutt", breed)

	alive, ok := obj.Get("alive")
	require.True(t, ok)
	require.Equal(t, true, alive)
}

func TestGetMemberFunctionWalksMRO(t *testing.T) {
	env := NewEnvironment()
	animal, err := env.DefineClass("Animal")
	require.NoError(t, err)
	dog, err := env.DefineClass("Dog", "Animal")
	require.NoError(t, err)

	require.NoError(t, env.DefineMethod(animal, "speak", func(self *ObjectInstance, args []any) (any, error) {
		return "...", nil
	}))

	obj, err := env.NewObject("Dog", nil)
	require.NoError(t, err)

	m, err := env.GetMemberFunction(obj, "speak")
	require.NoError(t, err)
	require.NotNil(t, m)

	require.NoError(t, env.DefineMethod(dog, "speak", func(self *ObjectInstance, args []any) (any, error) {
		return "woof", nil
	}))

	m, err = env.GetMemberFunction(obj, "speak")
	require.NoError(t, err)
	result, err := m.Impl(obj, nil)
	require.NoError(t, err)
	require.Equal(t, "woof", result)
}

func TestCallNextMethodDelegatesToParentImplementation(t *testing.T) {
	env := NewEnvironment()
	animal, err := env.DefineClass("Animal")
	require.NoError(t, err)
	dog, err := env.DefineClass("Dog", "Animal")
	require.NoError(t, err)

	require.NoError(t, env.DefineMethod(animal, "speak", func(self *ObjectInstance, args []any) (any, error) {
		return "...", nil
	}))
	require.NoError(t, env.DefineMethod(dog, "speak", func(self *ObjectInstance, args []any) (any, error) {
		return "woof", nil
	}))

	obj, err := env.NewObject("Dog", nil)
	require.NoError(t, err)

	m, err := env.CallNextMethod(obj, "Dog::speak")
	require.NoError(t, err)
	require.NotNil(t, m)
	result, err := m.Impl(obj, nil)
	require.NoError(t, err)
	require.Equal(t, "...", result)
}

func TestRenameClassCarriesNestedNamespace(t *testing.T) {
	env := NewEnvironment()
	_, err := env.DefineClass("Base")
	require.NoError(t, err)
	outer, err := env.DefineClass("Outer")
	require.NoError(t, err)
	inner, err := env.DefineClass("Outer::Inner", "Base")
	require.NoError(t, err)
	env.DefineNested(outer, "Inner", inner)

	obj, err := env.NewObject("Outer::Inner", nil)
	require.NoError(t, err)
	require.NotNil(t, obj)

	require.NoError(t, env.RenameClass(outer, "Renamed"))

	_, ok := env.Resolve("Outer")
	require.False(t, ok)
	resolved, ok := env.Resolve("Renamed")
	require.True(t, ok)
	require.NotNil(t, resolved)
	require.Same(t, inner, resolved.(*Class).nested["Inner"])
}
