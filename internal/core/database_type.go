package core

import "go.mongodb.org/mongo-driver/bson"

// ─── Database Types ────────────────────────────────────────────────────────────

// DatabaseType defines the type of database
type DatabaseType string

const (
	Mongo DatabaseType = "mongo"
	Redis DatabaseType = "redis"
)

// Databases contains all supported database types
var Databases = []DatabaseType{Mongo, Redis}

type MongoDatabaseName string
type MongoCollection string
type RedisKey string
type FluentdSubTag string

// ─── MongoDB ───────────────────────────────────────────────────────────────────
const (
	MongoDBPattaMap MongoDatabaseName = "pattamap"
)

// MongoDB collections
const (
	MongoCollectionUsers                MongoCollection = "users"
	MongoCollectionEmployees            MongoCollection = "employees"
	MongoCollectionEstablishments       MongoCollection = "establishments"
	MongoCollectionEmployments          MongoCollection = "employments"
	MongoCollectionIndependentPositions MongoCollection = "independent_positions"
	MongoCollectionNotifications        MongoCollection = "notifications"
	MongoCollectionMissionProgress      MongoCollection = "mission_progress"
)

// ─── Redis ─────────────────────────────────────────────────────────────────────
const (
	// 所有快取 key 的前綴，pattern invalidation 以此為界
	RedisKeyServerName RedisKey = "pattamap"
)

// 快取 key 片段
const (
	CacheKeyCategories        RedisKey = "categories"
	CacheKeyDashboard         RedisKey = "dashboard"
	CacheKeyEstablishmentList RedisKey = "establishments"
	CacheKeyEstablishment     RedisKey = "establishment"
	CacheKeyRateLimit         RedisKey = "ratelimit"
)

// ─── Fluentd ───────────────────────────────────────────────────────────────────
const (
	FluentdRequest      FluentdSubTag = "request_log"
	FluentdResponse     FluentdSubTag = "response_log"
	FluentdNotification FluentdSubTag = "notification_log"
)

type ListOptions struct {
	Filter bson.M `json:"filter,omitempty" bson:"filter,omitempty"`
	Page   int64  `json:"page,omitempty" bson:"page,omitempty"`
	Size   int64  `json:"size,omitempty" bson:"size,omitempty"`
}
