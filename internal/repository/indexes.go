package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureIndexes is called at startup and is idempotent. Problems are collected
so a misconfigured database fails startup with every cause listed.

uniqueCompletions controls the (user_id, activity_id) unique index that
rejects a second completion of the same activity at the store level.
*/
func EnsureIndexes(ctx context.Context, db *mongo.Database, uniqueCompletions bool) error {
	var problems []string

	ensure := func(coll string, models ...mongo.IndexModel) {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", coll, err))
		}
	}

	ensure(UsersCollection,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "first_name", Value: 1}, {Key: "last_name", Value: 1}},
			Options: options.Index().SetName("uniq_user_name_pair").SetUnique(true),
		},
		mongo.IndexModel{
			Keys:    bson.D{{Key: "role", Value: 1}, {Key: "points", Value: -1}},
			Options: options.Index().SetName("idx_user_role_points"),
		},
	)

	ensure(ActivitiesCollection, mongo.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: -1}},
		Options: options.Index().SetName("idx_activity_created"),
	})

	completionIdx := options.Index().SetName("idx_completion_user_activity")
	if uniqueCompletions {
		completionIdx = options.Index().SetName("uniq_completion_user_activity").SetUnique(true)
	}
	ensure(CompletionsCollection, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "activity_id", Value: 1}},
		Options: completionIdx,
	})

	ensure(CampKidsCollection, mongo.IndexModel{
		Keys:    bson.D{{Key: "camp_id", Value: 1}, {Key: "group_number", Value: 1}, {Key: "points", Value: -1}},
		Options: options.Index().SetName("idx_kid_camp_group_points"),
	})

	ensure(PointLogsCollection, mongo.IndexModel{
		Keys:    bson.D{{Key: "student_id", Value: 1}, {Key: "timestamp", Value: -1}},
		Options: options.Index().SetName("idx_pointlog_student_time"),
	})

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}

	logrus.WithField("unique_completions", uniqueCompletions).Info("Indexes ensured")
	return nil
}
