package validators

import "go.mongodb.org/mongo-driver/bson"

var LandPurchaseValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_id",
			"booking_id",
			"land_type",
			"size",
			"status",
			"ownership_certificate",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"user_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"booking_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"land_type": bson.M{
				"bsonType": "string",
				"enum": []string{
					"residential",
					"commercial",
					"luxury",
				},
			},

			"size": bson.M{
				"bsonType":         []string{"double", "int", "long"},
				"exclusiveMinimum": true,
				"minimum":          0,
			},

			"price": bson.M{
				"bsonType": []string{"double", "int", "long"},
				"minimum":  0,
			},

			"coordinates": bson.M{
				"bsonType": "object",
				"properties": bson.M{
					"latitude": bson.M{
						"bsonType": []string{"double", "int", "long"},
						"minimum":  -90,
						"maximum":  90,
					},
					"longitude": bson.M{
						"bsonType": []string{"double", "int", "long"},
						"minimum":  -180,
						"maximum":  180,
					},
				},
			},

			"ownership_certificate": bson.M{
				"bsonType": "object",
				"required": []string{"certificate_number", "issue_date"},
				"properties": bson.M{
					"certificate_number": bson.M{
						"bsonType":  "string",
						"minLength": 10,
					},
					"issue_date": bson.M{
						"bsonType": "date",
					},
					"registration_details": bson.M{
						"bsonType": "string",
					},
				},
			},

			"map_location": bson.M{
				"bsonType": "string",
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"pending",
					"confirmed",
					"registered",
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
