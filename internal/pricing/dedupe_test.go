package pricing

import (
	"reflect"
	"testing"
)

func TestDedupeByLowestPrice(t *testing.T) {
	tests := []struct {
		name string
		in   []Row
		want []Row
	}{
		{
			name: "пустой вход",
			in:   []Row{},
			want: []Row{},
		},
		{
			name: "без дублей",
			in:   []Row{{"A", 100}, {"B", 90}},
			want: []Row{{"A", 100}, {"B", 90}},
		},
		{
			name: "дубль с меньшей ценой выигрывает",
			in:   []Row{{"A", 100}, {"B", 90}, {"A", 95}},
			want: []Row{{"A", 95}, {"B", 90}},
		},
		{
			name: "при равной цене остается первая строка",
			in:   []Row{{"A", 100}, {"A", 100}},
			want: []Row{{"A", 100}},
		},
		{
			name: "порядок первых вхождений сохраняется",
			in:   []Row{{"C", 5}, {"A", 3}, {"B", 7}, {"A", 1}},
			want: []Row{{"C", 5}, {"A", 1}, {"B", 7}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DedupeByLowestPrice(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DedupeByLowestPrice(%v) = %v, ожидалось %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDedupeIdempotent(t *testing.T) {
	in := []Row{{"A", 100}, {"B", 90}, {"A", 95}, {"B", 90}}
	once := DedupeByLowestPrice(in)
	twice := DedupeByLowestPrice(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("повторная дедупликация изменила результат: %v -> %v", once, twice)
	}
}
