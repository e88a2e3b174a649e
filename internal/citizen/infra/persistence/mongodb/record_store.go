package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"Rialto/internal/shared/recordstore"
)

// RecordStore 是记录库的 mongodb 镜像后端：一张表一个集合，
// 字段集原样放在 fields 子文档里，过滤表达式编译为 bson。
type RecordStore struct {
	db *mongo.Database
}

func NewRecordStore(db *mongo.Database) *RecordStore {
	return &RecordStore{db: db}
}

type recordDoc struct {
	ID        string         `bson:"_id"`
	Fields    map[string]any `bson:"fields"`
	CreatedAt time.Time      `bson:"created_at"`
}

func (s *RecordStore) Select(ctx context.Context, table string, filter recordstore.Expr, opts ...recordstore.SelectOption) ([]recordstore.Record, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("mongodb database is nil")
	}
	o := recordstore.BuildOptions(opts)

	query := bson.M{}
	if filter != nil {
		query = compile(filter)
	}
	findOpts := options.Find()
	if o.SortField != "" {
		dir := 1
		if o.SortDesc {
			dir = -1
		}
		findOpts.SetSort(bson.D{{Key: "fields." + o.SortField, Value: dir}})
	}
	if o.MaxRecords > 0 {
		findOpts.SetLimit(int64(o.MaxRecords))
	}

	cur, err := s.db.Collection(table).Find(ctx, query, findOpts)
	if err != nil {
		return nil, err
	}
	var docs []recordDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	recs := make([]recordstore.Record, 0, len(docs))
	for _, d := range docs {
		recs = append(recs, recordstore.Record{
			ID:        d.ID,
			Fields:    d.Fields,
			CreatedAt: d.CreatedAt,
		})
	}
	return recs, nil
}

// compile 把过滤表达式编译为 bson 查询。未知节点编译为恒假，
// 与文本公式后端对未知节点的处理保持一致。
func compile(e recordstore.Expr) bson.M {
	switch n := e.(type) {
	case recordstore.CmpExpr:
		field := "fields." + n.Field
		switch n.Op {
		case recordstore.OpEq:
			return bson.M{field: n.Value}
		case recordstore.OpNe:
			return bson.M{field: bson.M{"$ne": n.Value}}
		case recordstore.OpGt, recordstore.OpAfter:
			return bson.M{field: bson.M{"$gt": n.Value}}
		case recordstore.OpLt, recordstore.OpBefore:
			return bson.M{field: bson.M{"$lt": n.Value}}
		}
	case recordstore.AndExpr:
		if len(n.Exprs) == 0 {
			return bson.M{}
		}
		subs := make([]bson.M, 0, len(n.Exprs))
		for _, sub := range n.Exprs {
			subs = append(subs, compile(sub))
		}
		return bson.M{"$and": subs}
	case recordstore.OrExpr:
		if len(n.Exprs) == 0 {
			return alwaysFalse()
		}
		subs := make([]bson.M, 0, len(n.Exprs))
		for _, sub := range n.Exprs {
			subs = append(subs, compile(sub))
		}
		return bson.M{"$or": subs}
	case recordstore.NotExpr:
		return bson.M{"$nor": []bson.M{compile(n.Expr)}}
	}
	return alwaysFalse()
}

func alwaysFalse() bson.M {
	return bson.M{"_id": bson.M{"$exists": false}}
}
