package mongostore

import (
	"socialhub/internal/models"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func byID(id string) bson.M {
	return bson.M{"_id": id}
}

func inIDs(field string, ids []string) bson.M {
	if ids == nil {
		ids = []string{}
	}
	return bson.M{field: bson.M{"$in": ids}}
}

func addToSetUpdate(field, value string, now time.Time) bson.M {
	return bson.M{
		"$addToSet": bson.M{field: value},
		"$set":      bson.M{"updatedAt": now},
	}
}

func pullUpdate(field, value string, now time.Time) bson.M {
	return bson.M{
		"$pull": bson.M{field: value},
		"$set":  bson.M{"updatedAt": now},
	}
}

func pushCommentUpdate(comment models.Comment, now time.Time) bson.M {
	return bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updatedAt": now},
	}
}

// profileUpdate never touches the relationship sets.
func profileUpdate(user *models.User) bson.M {
	return bson.M{"$set": bson.M{
		"username":   user.Username,
		"fullName":   user.FullName,
		"email":      user.Email,
		"password":   user.PasswordHash,
		"bio":        user.Bio,
		"link":       user.Link,
		"profileImg": user.ProfileImg,
		"coverImg":   user.CoverImg,
		"updatedAt":  user.UpdatedAt,
	}}
}

func samplePipeline(excludeIDs []string, size int) mongo.Pipeline {
	if excludeIDs == nil {
		excludeIDs = []string{}
	}
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: bson.D{{Key: "$nin", Value: excludeIDs}}}}}},
		{{Key: "$sample", Value: bson.D{{Key: "size", Value: size}}}},
	}
}

func newestFirst() bson.D {
	return bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}
}
