package store

import (
	"context"
	"errors"

	"github.com/adithyapradeep05/kibi-cruz-sub000/config"
	"github.com/adithyapradeep05/kibi-cruz-sub000/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Remote store operations, keyed by user. Every function tolerates the
// remote collaborator being absent by returning ErrRemoteUnavailable;
// callers degrade to local storage.

var ErrRemoteUnavailable = errors.New("remote store unavailable")

// RemoteAvailable reports whether remote reads/writes are worth attempting.
func RemoteAvailable() bool {
	return config.Connected()
}

func collection(name string) (*mongo.Collection, error) {
	coll := config.OpenCollection(name)
	if coll == nil {
		return nil, ErrRemoteUnavailable
	}
	return coll, nil
}

// ───── session logs ─────

func ListLogs(ctx context.Context, userID string) ([]models.SessionLog, error) {
	coll, err := collection("session_logs")
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []models.SessionLog
	err = cursor.All(ctx, &out)
	return out, err
}

func UpsertLog(ctx context.Context, entry models.SessionLog) error {
	coll, err := collection("session_logs")
	if err != nil {
		return err
	}
	filter := bson.M{"id": entry.ID, "user_id": entry.UserID}
	opts := options.Replace().SetUpsert(true)
	_, err = coll.ReplaceOne(ctx, filter, entry, opts)
	return err
}

func DeleteLog(ctx context.Context, userID, id string) error {
	coll, err := collection("session_logs")
	if err != nil {
		return err
	}
	_, err = coll.DeleteOne(ctx, bson.M{"id": id, "user_id": userID})
	return err
}

// ───── streak ─────

func GetStreak(ctx context.Context, userID string) (models.StreakData, bool, error) {
	var sd models.StreakData
	coll, err := collection("streaks")
	if err != nil {
		return sd, false, err
	}
	err = coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&sd)
	if err == mongo.ErrNoDocuments {
		return sd, false, nil
	}
	if err != nil {
		return sd, false, err
	}
	return sd, true, nil
}

func UpsertStreak(ctx context.Context, sd models.StreakData) error {
	coll, err := collection("streaks")
	if err != nil {
		return err
	}
	filter := bson.M{"user_id": sd.UserID}
	opts := options.Replace().SetUpsert(true)
	_, err = coll.ReplaceOne(ctx, filter, sd, opts)
	return err
}

// ───── goals ─────

func ListGoals(ctx context.Context, userID string) ([]models.Goal, error) {
	coll, err := collection("goals")
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []models.Goal
	err = cursor.All(ctx, &out)
	return out, err
}

func UpsertGoal(ctx context.Context, g models.Goal) error {
	coll, err := collection("goals")
	if err != nil {
		return err
	}
	filter := bson.M{"id": g.ID, "user_id": g.UserID}
	opts := options.Replace().SetUpsert(true)
	_, err = coll.ReplaceOne(ctx, filter, g, opts)
	return err
}

func DeleteGoal(ctx context.Context, userID, id string) error {
	coll, err := collection("goals")
	if err != nil {
		return err
	}
	_, err = coll.DeleteOne(ctx, bson.M{"id": id, "user_id": userID})
	return err
}
