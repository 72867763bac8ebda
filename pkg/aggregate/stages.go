// Package aggregate builds the MongoDB aggregation pipelines behind the read views.
// Every builder is pure: it only returns a mongo.Pipeline for the store to run.
package aggregate

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func Match(filter bson.D) bson.D {
	return bson.D{{Key: "$match", Value: filter}}
}

// Lookup joins `from` on localField == foreignField into `as`; sub stages run on the joined docs
func Lookup(from, localField, foreignField, as string, sub ...bson.D) bson.D {
	spec := bson.D{
		{Key: "from", Value: from},
		{Key: "localField", Value: localField},
		{Key: "foreignField", Value: foreignField},
		{Key: "as", Value: as},
	}
	if len(sub) > 0 {
		spec = append(spec, bson.E{Key: "pipeline", Value: mongo.Pipeline(sub)})
	}
	return bson.D{{Key: "$lookup", Value: spec}}
}

func AddFields(fields bson.D) bson.D {
	return bson.D{{Key: "$addFields", Value: fields}}
}

// Project allow-list projection. Fields not named are dropped, credentials are never named.
func Project(fields ...string) bson.D {
	spec := make(bson.D, 0, len(fields))
	for _, f := range fields {
		spec = append(spec, bson.E{Key: f, Value: 1})
	}
	return bson.D{{Key: "$project", Value: spec}}
}

func Sort(keys bson.D) bson.D {
	return bson.D{{Key: "$sort", Value: keys}}
}

func Skip(n int64) bson.D {
	return bson.D{{Key: "$skip", Value: n}}
}

func Limit(n int64) bson.D {
	return bson.D{{Key: "$limit", Value: n}}
}

func Unwind(path string) bson.D {
	return bson.D{{Key: "$unwind", Value: path}}
}

func ReplaceRoot(expr string) bson.D {
	return bson.D{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: expr}}}}
}

func Facet(facets bson.D) bson.D {
	return bson.D{{Key: "$facet", Value: facets}}
}

// First 取数组第一个元素，lookup 结果为空时字段缺失
func First(expr interface{}) bson.D {
	return bson.D{{Key: "$first", Value: expr}}
}

func Size(expr interface{}) bson.D {
	return bson.D{{Key: "$size", Value: expr}}
}

func IfNull(expr, fallback interface{}) bson.D {
	return bson.D{{Key: "$ifNull", Value: bson.A{expr, fallback}}}
}

// In true when value is a member of array
func In(value, array interface{}) bson.D {
	return bson.D{{Key: "$in", Value: bson.A{value, array}}}
}

// OrderedJoin re-orders joined docs to follow the id array, keeping repeats
// and dropping ids with no matching doc. $lookup alone returns natural order without repeats.
func OrderedJoin(ids interface{}, docs string) bson.D {
	pick := First(bson.D{{Key: "$filter", Value: bson.D{
		{Key: "input", Value: docs},
		{Key: "as", Value: "doc"},
		{Key: "cond", Value: bson.D{{Key: "$eq", Value: bson.A{"$$doc._id", "$$id"}}}},
	}}})
	mapped := bson.D{{Key: "$map", Value: bson.D{
		{Key: "input", Value: IfNull(ids, bson.A{})},
		{Key: "as", Value: "id"},
		{Key: "in", Value: pick},
	}}}
	return bson.D{{Key: "$filter", Value: bson.D{
		{Key: "input", Value: mapped},
		{Key: "as", Value: "entry"},
		{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$entry", nil}}}},
	}}}
}
