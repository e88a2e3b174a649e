package mongodb

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"

	"Rialto/internal/shared/recordstore"
)

func TestCompile_比较节点(t *testing.T) {
	got := compile(recordstore.Eq("owner", "marco"))
	want := bson.M{"fields.owner": "marco"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}

	got = compile(recordstore.Ne("status", "active"))
	want = bson.M{"fields.status": bson.M{"$ne": "active"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestCompile_组合节点(t *testing.T) {
	e := recordstore.And(
		recordstore.Or(recordstore.Eq("buyer", "m"), recordstore.Eq("seller", "m")),
		recordstore.Eq("status", "active"),
	)
	got := compile(e)
	want := bson.M{"$and": []bson.M{
		{"$or": []bson.M{
			{"fields.buyer": "m"},
			{"fields.seller": "m"},
		}},
		{"fields.status": "active"},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestCompile_空Or恒假_空And恒真(t *testing.T) {
	if got := compile(recordstore.Or()); !reflect.DeepEqual(got, alwaysFalse()) {
		t.Fatalf("空 Or 应恒假: %v", got)
	}
	if got := compile(recordstore.And()); len(got) != 0 {
		t.Fatalf("空 And 应恒真: %v", got)
	}
}

func TestCompile_Not用nor包裹(t *testing.T) {
	got := compile(recordstore.Not(recordstore.Eq("district", "San Marco")))
	want := bson.M{"$nor": []bson.M{{"fields.district": "San Marco"}}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}
