package validators

import "go.mongodb.org/mongo-driver/bson"

var UserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"email",
			"role",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"email": bson.M{
				"bsonType": "string",
				"pattern":  "^[^@\\s]+@[^@\\s]+\\.[^@\\s]+$",
			},

			"role": bson.M{
				"bsonType": "string",
				"enum": []string{
					"user",
					"admin",
				},
			},

			"subscription": bson.M{
				"bsonType": "object",
				"properties": bson.M{
					"plan": bson.M{
						"bsonType": "string",
						"enum": []string{
							"none",
							"monthly",
							"yearly",
							"premium",
						},
					},
					"start_date": bson.M{
						"bsonType": "date",
					},
					"end_date": bson.M{
						"bsonType": "date",
					},
					"is_active": bson.M{
						"bsonType": "bool",
					},
					"payment_session_id": bson.M{
						"bsonType": "string",
					},
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
