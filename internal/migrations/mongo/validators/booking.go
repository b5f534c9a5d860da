package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_id",
			"trip_type",
			"flight_date",
			"status",
			"payment_status",
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

			"trip_type": bson.M{
				"bsonType": "string",
				"enum": []string{
					"mars",
				},
			},

			"main_ticket": bson.M{
				"bsonType": "object",
				"properties": bson.M{
					"spaceship":      bson.M{"bsonType": "bool"},
					"landing":        bson.M{"bsonType": "bool"},
					"galaxy_viewing": bson.M{"bsonType": "bool"},
					"basic_tour":     bson.M{"bsonType": "bool"},
				},
			},

			"additional_activities": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"properties": bson.M{
						"activity_type": bson.M{
							"bsonType": "string",
							"enum": []string{
								"mars-walking",
								"rover-ride",
								"photography",
								"souvenirs",
								"land-purchase",
								"moon-walking",
							},
						},
						"booked": bson.M{"bsonType": "bool"},
						"price":  bson.M{"bsonType": []string{"double", "int", "long"}},
					},
				},
			},

			"flight_date": bson.M{
				"bsonType": "date",
			},

			"total_price": bson.M{
				"bsonType": []string{"double", "int", "long"},
				"minimum":  0,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"pending",
					"confirmed",
					"completed",
					"cancelled",
				},
			},

			"payment_status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"pending",
					"paid",
					"refunded",
				},
			},

			"spaceship_location": bson.M{
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
					"altitude": bson.M{
						"bsonType": []string{"double", "int", "long"},
						"minimum":  0,
					},
					"last_updated": bson.M{
						"bsonType": "date",
					},
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
