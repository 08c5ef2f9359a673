package cookbook

import (
	"sync"
	"sync/atomic"
	"testing"

	"cookbook-service/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ingredient(name string, cookTime int) EntryInput {
	return EntryInput{Type: "ingredient", Name: name, CookTime: &cookTime}
}

func recipe(name string, items ...RequiredItemInput) EntryInput {
	return EntryInput{Type: "recipe", Name: name, RequiredItems: items}
}

func item(name string, quantity int) RequiredItemInput {
	return RequiredItemInput{Name: &name, Quantity: &quantity}
}

func TestRegistry_InsertIngredient(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Insert(ingredient("egg", 5)))

	entry, ok := r.Get("egg")
	require.True(t, ok)
	assert.Equal(t, &Ingredient{Name: "egg", CookTime: 5}, entry)
	assert.Equal(t, KindIngredient, entry.Kind())
	assert.Equal(t, "egg", entry.EntryName())
}

func TestRegistry_InsertRecipe(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Insert(recipe("omelette", item("egg", 2), item("butter", 1))))

	entry, ok := r.Get("omelette")
	require.True(t, ok)
	assert.Equal(t, &Recipe{
		Name: "omelette",
		RequiredItems: []RequiredItem{
			{Name: "egg", Quantity: 2},
			{Name: "butter", Quantity: 1},
		},
	}, entry)
}

func TestRegistry_DuplicateNameKeepsFirst(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Insert(ingredient("egg", 5)))
	err := r.Insert(ingredient("egg", 3))
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.EqualError(t, err, "duplicate name")

	entry, _ := r.Get("egg")
	assert.Equal(t, 5, entry.(*Ingredient).CookTime)
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, uint64(1), r.Revision())
}

func TestRegistry_DuplicateAcrossKinds(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Insert(ingredient("egg", 5)))
	assert.ErrorIs(t, r.Insert(recipe("egg")), ErrDuplicateName)
}

func TestRegistry_NamesAreCaseSensitive(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Insert(ingredient("egg", 5)))
	require.NoError(t, r.Insert(ingredient("Egg", 5)))
	assert.Equal(t, []string{"Egg", "egg"}, r.Names())
}

func TestRegistry_Rejections(t *testing.T) {
	negative := -1

	tests := []struct {
		name string
		in   EntryInput
		want error
	}{
		{"unknown type", EntryInput{Type: "drink", Name: "tea"}, ErrInvalidType},
		{"empty type", EntryInput{Name: "tea"}, ErrInvalidType},
		{"type is case sensitive", EntryInput{Type: "Recipe", Name: "tea"}, ErrInvalidType},
		{"negative cook time", EntryInput{Type: "ingredient", Name: "egg", CookTime: &negative}, ErrInvalidCookTime},
		{"missing cook time", EntryInput{Type: "ingredient", Name: "egg"}, ErrInvalidCookTime},
		{"item without quantity", recipe("toast", RequiredItemInput{Name: strPtr("bread")}), ErrInvalidRequiredItem},
		{"item without name", recipe("toast", RequiredItemInput{Quantity: intPtr(1)}), ErrInvalidRequiredItem},
		{"duplicate item", recipe("toast", item("bread", 1), item("bread", 2)), ErrDuplicateRequiredItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			err := r.Insert(tt.in)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsRejected(err))
			assert.Equal(t, 0, r.Len())
			assert.Equal(t, uint64(0), r.Revision())
		})
	}
}

func TestRegistry_ValidationOrder(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Insert(ingredient("egg", 5)))

	// 類型檢查先於重名
	assert.ErrorIs(t, r.Insert(EntryInput{Type: "drink", Name: "egg"}), ErrInvalidType)

	// 重名先於 cookTime
	assert.ErrorIs(t, r.Insert(ingredient("egg", -1)), ErrDuplicateName)

	// 缺欄位先於重複項目（依項目順序）
	assert.ErrorIs(t, r.Insert(recipe("toast", RequiredItemInput{Name: strPtr("bread")}, item("bread", 1))), ErrInvalidRequiredItem)
	assert.ErrorIs(t, r.Insert(recipe("toast", item("bread", 1), item("bread", 1), RequiredItemInput{})), ErrDuplicateRequiredItem)
}

func TestRegistry_ForwardReferenceAllowed(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Insert(recipe("omelette", item("egg", 2))))
	_, ok := r.Get("egg")
	assert.False(t, ok)
}

func TestRegistry_RecipeWithoutItems(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Insert(EntryInput{Type: "recipe", Name: "water"}))
	entry, ok := r.Get("water")
	require.True(t, ok)
	assert.Empty(t, entry.(*Recipe).RequiredItems)
}

func TestRegistry_ItemQuantityUnconstrained(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Insert(recipe("odd", item("egg", -3), item("milk", 0))))
}

func TestRegistry_ConcurrentInsertSameName(t *testing.T) {
	r := NewRegistry()

	var (
		wg        sync.WaitGroup
		successes atomic.Int32
	)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(cookTime int) {
			defer wg.Done()
			if err := r.Insert(ingredient("egg", cookTime)); err == nil {
				successes.Add(1)
			} else {
				assert.ErrorIs(t, err, ErrDuplicateName)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, uint64(1), r.Revision())
}

func TestRegistry_IDIsPerInstance(t *testing.T) {
	a, b := NewRegistry(), NewRegistry()
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())

	id := a.ID()
	require.NoError(t, a.Insert(ingredient("egg", 5)))
	assert.Equal(t, id, a.ID())
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func TestNewEntryInput(t *testing.T) {
	in := NewEntryInput(common.EntryRequest{
		Type: "recipe",
		Name: "Toast",
		RequiredItems: []common.RequiredItemRequest{
			{Name: common.StringPtr("Bread"), Quantity: common.IntPtr(2)},
			{Name: common.StringPtr("Butter")},
		},
	})

	assert.Equal(t, "recipe", in.Type)
	assert.Equal(t, "Toast", in.Name)
	assert.Nil(t, in.CookTime)
	require.Len(t, in.RequiredItems, 2)
	assert.Equal(t, "Bread", *in.RequiredItems[0].Name)
	assert.Equal(t, 2, *in.RequiredItems[0].Quantity)
	assert.Nil(t, in.RequiredItems[1].Quantity)
}
