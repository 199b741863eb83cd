package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/manjiriciklum/WellnessSage-sub000/crypto"
	"github.com/manjiriciklum/WellnessSage-sub000/models"
)

const (
	collUsers         = "users"
	collHealthData    = "health_data"
	collDevices       = "wearable_devices"
	collReminders     = "reminders"
	collGoals         = "goals"
	collInsights      = "ai_insights"
	collConsultations = "health_consultations"
	collDoctors       = "doctors"
	collPushEndpoints = "push_endpoints"
	collCounters      = "counters"
)

const pingTimeout = 2 * time.Second

// MongoStore is the primary backend. Every method checks reachability
// first and delegates the whole call to the in-memory fallback when the
// cluster is unreachable or the operation errors; raw driver errors never
// reach the route layer. The check and the delegated call are not atomic,
// so an occasional spurious fallback is tolerated.
type MongoStore struct {
	client   *mongo.Client
	db       *mongo.Database
	fallback *MemStore
	enc      *crypto.Encryptor
}

// NewMongoStore connects with a 5s server-selection and 10s connect
// timeout. Connection failure at startup is not fatal: the store reports
// disconnected and every call lands on the fallback until the cluster
// comes back.
func NewMongoStore(ctx context.Context, uri, dbName string, fallback *MemStore, enc *crypto.Encryptor) (*MongoStore, error) {
	if fallback == nil {
		return nil, errors.New("mongo store requires an in-memory fallback")
	}
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5 * time.Second).
		SetConnectTimeout(10 * time.Second)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}
	return &MongoStore{
		client:   client,
		db:       client.Database(dbName),
		fallback: fallback,
		enc:      enc,
	}, nil
}

// Connected re-evaluates connectivity with a short ping. The underlying
// connection can drop between calls, so the verdict is never cached.
func (m *MongoStore) Connected(ctx context.Context) bool {
	if m == nil || m.client == nil {
		return false
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return m.client.Ping(pingCtx, nil) == nil
}

// Disconnect releases the client. Used on shutdown.
func (m *MongoStore) Disconnect(ctx context.Context) error {
	if m == nil || m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}

// failover logs a primary-side error before the call delegates. Not-found
// is a definitive answer, never a failover.
func failover(op string, err error) {
	log.Printf("storage: mongo %s failed, delegating to in-memory fallback: %v", op, err)
}

// nextSeq allocates the next monotonic id for an entity type from the
// counters collection.
func (m *MongoStore) nextSeq(ctx context.Context, entity string) (uint, error) {
	res := m.db.Collection(collCounters).FindOneAndUpdate(ctx,
		bson.M{"_id": entity},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)
	var doc struct {
		Seq uint `bson:"seq"`
	}
	if err := res.Decode(&doc); err != nil {
		return 0, fmt.Errorf("failed to allocate %s id: %w", entity, err)
	}
	return doc.Seq, nil
}

func (m *MongoStore) findOne(ctx context.Context, coll string, filter bson.M, out any) error {
	err := m.db.Collection(coll).FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func (m *MongoStore) findAll(ctx context.Context, coll string, filter bson.M, sortDoc bson.D, out any) error {
	opts := options.Find()
	if sortDoc != nil {
		opts.SetSort(sortDoc)
	}
	cursor, err := m.db.Collection(coll).Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

// --- users ---

func (m *MongoStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	if !m.Connected(ctx) {
		return m.fallback.GetUser(ctx, id)
	}
	var u models.User
	err := m.findOne(ctx, collUsers, bson.M{"id": id}, &u)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		failover("GetUser", err)
		return m.fallback.GetUser(ctx, id)
	}
	return &u, nil
}

func (m *MongoStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if !m.Connected(ctx) {
		return m.fallback.GetUserByUsername(ctx, username)
	}
	var u models.User
	err := m.findOne(ctx, collUsers, bson.M{"username": username}, &u)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		failover("GetUserByUsername", err)
		return m.fallback.GetUserByUsername(ctx, username)
	}
	return &u, nil
}

func (m *MongoStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if err := validateUser(user); err != nil {
		return nil, err
	}
	if !m.Connected(ctx) {
		return m.fallback.CreateUser(ctx, user)
	}
	if _, err := m.GetUserByUsername(ctx, user.Username); err == nil {
		return nil, fmt.Errorf("%w: username %q is taken", ErrValidation, user.Username)
	}
	created := *user
	id, err := m.nextSeq(ctx, "users")
	if err != nil {
		failover("CreateUser", err)
		return m.fallback.CreateUser(ctx, user)
	}
	created.ID = id
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now()
	}
	if created.Role == "" {
		created.Role = "user"
	}
	if _, err := m.db.Collection(collUsers).InsertOne(ctx, created); err != nil {
		failover("CreateUser", err)
		return m.fallback.CreateUser(ctx, user)
	}
	return &created, nil
}

func (m *MongoStore) UpdateUser(ctx context.Context, id uint, user *models.User) (*models.User, error) {
	if !m.Connected(ctx) {
		return m.fallback.UpdateUser(ctx, id, user)
	}
	existing, err := m.GetUser(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		failover("UpdateUser", err)
		return m.fallback.UpdateUser(ctx, id, user)
	}
	updated := mergeUser(*existing, user)
	if _, err := m.db.Collection(collUsers).ReplaceOne(ctx, bson.M{"id": id}, updated); err != nil {
		failover("UpdateUser", err)
		return m.fallback.UpdateUser(ctx, id, user)
	}
	return &updated, nil
}

// --- health data ---

func (m *MongoStore) GetHealthDataByUserID(ctx context.Context, userID uint) ([]models.HealthDataRecord, error) {
	if !m.Connected(ctx) {
		return m.fallback.GetHealthDataByUserID(ctx, userID)
	}
	var recs []models.HealthDataRecord
	if err := m.findAll(ctx, collHealthData, bson.M{"userId": userID}, bson.D{{Key: "date", Value: -1}}, &recs); err != nil {
		failover("GetHealthDataByUserID", err)
		return m.fallback.GetHealthDataByUserID(ctx, userID)
	}
	out := make([]models.HealthDataRecord, 0, len(recs))
	for _, rec := range recs {
		out = append(out, decryptHealthRecord(m.enc, rec))
	}
	return out, nil
}

func (m *MongoStore) GetHealthData(ctx context.Context, id uint) (*models.HealthDataRecord, error) {
	if !m.Connected(ctx) {
		return m.fallback.GetHealthData(ctx, id)
	}
	var rec models.HealthDataRecord
	err := m.findOne(ctx, collHealthData, bson.M{"id": id}, &rec)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		failover("GetHealthData", err)
		return m.fallback.GetHealthData(ctx, id)
	}
	opened := decryptHealthRecord(m.enc, rec)
	return &opened, nil
}

func (m *MongoStore) GetLatestHealthData(ctx context.Context, userID uint) (*models.HealthDataRecord, error) {
	if !m.Connected(ctx) {
		return m.fallback.GetLatestHealthData(ctx, userID)
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}})
	var rec models.HealthDataRecord
	err := m.db.Collection(collHealthData).FindOne(ctx, bson.M{"userId": userID}, opts).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		failover("GetLatestHealthData", err)
		return m.fallback.GetLatestHealthData(ctx, userID)
	}
	opened := decryptHealthRecord(m.enc, rec)
	return &opened, nil
}

func (m *MongoStore) CreateHealthData(ctx context.Context, rec *models.HealthDataRecord) (*models.HealthDataRecord, error) {
	if err := validateHealthData(rec); err != nil {
		return nil, err
	}
	if !m.Connected(ctx) {
		return m.fallback.CreateHealthData(ctx, rec)
	}
	created := *rec
	id, err := m.nextSeq(ctx, "healthData")
	if err != nil {
		failover("CreateHealthData", err)
		return m.fallback.CreateHealthData(ctx, rec)
	}
	created.ID = id
	if created.Date.IsZero() {
		created.Date = time.Now()
	}
	created.WasDecrypted = false
	if _, err := m.db.Collection(collHealthData).InsertOne(ctx, created); err != nil {
		failover("CreateHealthData", err)
		return m.fallback.CreateHealthData(ctx, rec)
	}
	return &created, nil
}

func (m *MongoStore) DeleteHealthData(ctx context.Context, id uint) error {
	if !m.Connected(ctx) {
		return m.fallback.DeleteHealthData(ctx, id)
	}
	res, err := m.db.Collection(collHealthData).DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		failover("DeleteHealthData", err)
		return m.fallback.DeleteHealthData(ctx, id)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// --- wearable devices ---

func (m *MongoStore) GetWearableDevicesByUserID(ctx context.Context, userID uint) ([]models.WearableDevice, error) {
	if !m.Connected(ctx) {
		return m.fallback.GetWearableDevicesByUserID(ctx, userID)
	}
	var out []models.WearableDevice
	if err := m.findAll(ctx, collDevices, bson.M{"userId": userID}, bson.D{{Key: "id", Value: 1}}, &out); err != nil {
		failover("GetWearableDevicesByUserID", err)
		return m.fallback.GetWearableDevicesByUserID(ctx, userID)
	}
	if out == nil {
		out = make([]models.WearableDevice, 0)
	}
	return out, nil
}

func (m *MongoStore) GetWearableDevice(ctx context.Context, id uint) (*models.WearableDevice, error) {
	if !m.Connected(ctx) {
		return m.fallback.GetWearableDevice(ctx, id)
	}
	var d models.WearableDevice
	err := m.findOne(ctx, collDevices, bson.M{"id": id}, &d)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		failover("GetWearableDevice", err)
		return m.fallback.GetWearableDevice(ctx, id)
	}
	return &d, nil
}

func (m *MongoStore) CreateWearableDevice(ctx context.Context, device *models.WearableDevice) (*models.WearableDevice, error) {
	if err := validateDevice(device); err != nil {
		return nil, err
	}
	if !m.Connected(ctx) {
		return m.fallback.CreateWearableDevice(ctx, device)
	}
	created := *device
	id, err := m.nextSeq(ctx, "devices")
	if err != nil {
		failover("CreateWearableDevice", err)
		return m.fallback.CreateWearableDevice(ctx, device)
	}
	created.ID = id
	if created.Capabilities == nil {
		created.Capabilities = make(map[string]bool)
	}
	if _, err := m.db.Collection(collDevices).InsertOne(ctx, created); err != nil {
		failover("CreateWearableDevice", err)
		return m.fallback.CreateWearableDevice(ctx, device)
	}
	return &created, nil
}

func (m *MongoStore) ConnectWearableDevice(ctx context.Context, id uint) (*models.WearableDevice, error) {
	return m.setDeviceConnected(ctx, id, true)
}

func (m *MongoStore) DisconnectWearableDevice(ctx context.Context, id uint) (*models.WearableDevice, error) {
	return m.setDeviceConnected(ctx, id, false)
}

func (m *MongoStore) setDeviceConnected(ctx context.Context, id uint, connected bool) (*models.WearableDevice, error) {
	delegate := m.fallback.ConnectWearableDevice
	if !connected {
		delegate = m.fallback.DisconnectWearableDevice
	}
	if !m.Connected(ctx) {
		return delegate(ctx, id)
	}
	res := m.db.Collection(collDevices).FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"isConnected": connected, "lastSynced": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var d models.WearableDevice
	err := res.Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		failover("setDeviceConnected", err)
		return delegate(ctx, id)
	}
	return &d, nil
}

func (m *MongoStore) UpdateDeviceLastSynced(ctx context.Context, id uint) (*models.WearableDevice, error) {
	if !m.Connected(ctx) {
		return m.fallback.UpdateDeviceLastSynced(ctx, id)
	}
	res := m.db.Collection(collDevices).FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"lastSynced": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var d models.WearableDevice
	err := res.Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		failover("UpdateDeviceLastSynced", err)
		return m.fallback.UpdateDeviceLastSynced(ctx, id)
	}
	return &d, nil
}

// --- reminders ---

func (m *MongoStore) GetRemindersByUserID(ctx context.Context, userID uint) ([]models.Reminder, error) {
	if !m.Connected(ctx) {
		return m.fallback.GetRemindersByUserID(ctx, userID)
	}
	var out []models.Reminder
	if err := m.findAll(ctx, collReminders, bson.M{"userId": userID}, bson.D{{Key: "id", Value: 1}}, &out); err != nil {
		failover("GetRemindersByUserID", err)
		return m.fallback.GetRemindersByUserID(ctx, userID)
	}
	if out == nil {
		out = make([]models.Reminder, 0)
	}
	return out, nil
}

func (m *MongoStore) CreateReminder(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error) {
	if err := validateReminder(reminder); err != nil {
		return nil, err
	}
	if !m.Connected(ctx) {
		return m.fallback.CreateReminder(ctx, reminder)
	}
	created := *reminder
	id, err := m.nextSeq(ctx, "reminders")
	if err != nil {
		failover("CreateReminder", err)
		return m.fallback.CreateReminder(ctx, reminder)
	}
	created.ID = id
	created.IsCompleted = false
	if _, err := m.db.Collection(collReminders).InsertOne(ctx, created); err != nil {
		failover("CreateReminder", err)
		return m.fallback.CreateReminder(ctx, reminder)
	}
	return &created, nil
}

func (m *MongoStore) CompleteReminder(ctx context.Context, id uint) (*models.Reminder, error) {
	if !m.Connected(ctx) {
		return m.fallback.CompleteReminder(ctx, id)
	}
	res := m.db.Collection(collReminders).FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"isCompleted": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var r models.Reminder
	err := res.Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		failover("CompleteReminder", err)
		return m.fallback.CompleteReminder(ctx, id)
	}
	return &r, nil
}

// --- goals ---

func (m *MongoStore) GetGoalsByUserID(ctx context.Context, userID uint) ([]models.Goal, error) {
	if !m.Connected(ctx) {
		return m.fallback.GetGoalsByUserID(ctx, userID)
	}
	var out []models.Goal
	if err := m.findAll(ctx, collGoals, bson.M{"userId": userID}, bson.D{{Key: "id", Value: 1}}, &out); err != nil {
		failover("GetGoalsByUserID", err)
		return m.fallback.GetGoalsByUserID(ctx, userID)
	}
	if out == nil {
		out = make([]models.Goal, 0)
	}
	return out, nil
}

func (m *MongoStore) GetGoal(ctx context.Context, id uint) (*models.Goal, error) {
	if !m.Connected(ctx) {
		return m.fallback.GetGoal(ctx, id)
	}
	var g models.Goal
	err := m.findOne(ctx, collGoals, bson.M{"id": id}, &g)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		failover("GetGoal", err)
		return m.fallback.GetGoal(ctx, id)
	}
	return &g, nil
}

func (m *MongoStore) CreateGoal(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	if err := validateGoal(goal); err != nil {
		return nil, err
	}
	if !m.Connected(ctx) {
		return m.fallback.CreateGoal(ctx, goal)
	}
	created := *goal
	id, err := m.nextSeq(ctx, "goals")
	if err != nil {
		failover("CreateGoal", err)
		return m.fallback.CreateGoal(ctx, goal)
	}
	created.ID = id
	if created.StartDate.IsZero() {
		created.StartDate = time.Now()
	}
	if _, err := m.db.Collection(collGoals).InsertOne(ctx, created); err != nil {
		failover("CreateGoal", err)
		return m.fallback.CreateGoal(ctx, goal)
	}
	return &created, nil
}

func (m *MongoStore) UpdateGoalProgress(ctx context.Context, id uint, current float64) (*models.Goal, error) {
	if err := validateGoalProgress(current); err != nil {
		return nil, err
	}
	if !m.Connected(ctx) {
		return m.fallback.UpdateGoalProgress(ctx, id, current)
	}
	res := m.db.Collection(collGoals).FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"current": current}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var g models.Goal
	err := res.Decode(&g)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		failover("UpdateGoalProgress", err)
		return m.fallback.UpdateGoalProgress(ctx, id, current)
	}
	return &g, nil
}

// --- ai insights ---

func (m *MongoStore) GetAiInsightsByUserID(ctx context.Context, userID uint) ([]models.AiInsight, error) {
	if !m.Connected(ctx) {
		return m.fallback.GetAiInsightsByUserID(ctx, userID)
	}
	var out []models.AiInsight
	if err := m.findAll(ctx, collInsights, bson.M{"userId": userID}, bson.D{{Key: "createdAt", Value: -1}}, &out); err != nil {
		failover("GetAiInsightsByUserID", err)
		return m.fallback.GetAiInsightsByUserID(ctx, userID)
	}
	if out == nil {
		out = make([]models.AiInsight, 0)
	}
	return out, nil
}

func (m *MongoStore) CreateAiInsight(ctx context.Context, insight *models.AiInsight) (*models.AiInsight, error) {
	if err := validateInsight(insight); err != nil {
		return nil, err
	}
	if !m.Connected(ctx) {
		return m.fallback.CreateAiInsight(ctx, insight)
	}
	created := *insight
	id, err := m.nextSeq(ctx, "insights")
	if err != nil {
		failover("CreateAiInsight", err)
		return m.fallback.CreateAiInsight(ctx, insight)
	}
	created.ID = id
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now()
	}
	created.IsRead = false
	if _, err := m.db.Collection(collInsights).InsertOne(ctx, created); err != nil {
		failover("CreateAiInsight", err)
		return m.fallback.CreateAiInsight(ctx, insight)
	}
	return &created, nil
}

func (m *MongoStore) MarkInsightRead(ctx context.Context, id uint) (*models.AiInsight, error) {
	if !m.Connected(ctx) {
		return m.fallback.MarkInsightRead(ctx, id)
	}
	res := m.db.Collection(collInsights).FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"isRead": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var in models.AiInsight
	err := res.Decode(&in)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		failover("MarkInsightRead", err)
		return m.fallback.MarkInsightRead(ctx, id)
	}
	return &in, nil
}

// --- consultations ---

func (m *MongoStore) GetHealthConsultationsByUserID(ctx context.Context, userID uint) ([]models.HealthConsultation, error) {
	if !m.Connected(ctx) {
		return m.fallback.GetHealthConsultationsByUserID(ctx, userID)
	}
	var raw []models.HealthConsultation
	if err := m.findAll(ctx, collConsultations, bson.M{"userId": userID}, bson.D{{Key: "createdAt", Value: -1}}, &raw); err != nil {
		failover("GetHealthConsultationsByUserID", err)
		return m.fallback.GetHealthConsultationsByUserID(ctx, userID)
	}
	out := make([]models.HealthConsultation, 0, len(raw))
	for _, c := range raw {
		out = append(out, decryptConsultation(m.enc, c))
	}
	return out, nil
}

func (m *MongoStore) CreateHealthConsultation(ctx context.Context, consultation *models.HealthConsultation) (*models.HealthConsultation, error) {
	if err := validateConsultation(consultation); err != nil {
		return nil, err
	}
	if !m.Connected(ctx) {
		return m.fallback.CreateHealthConsultation(ctx, consultation)
	}
	created := *consultation
	id, err := m.nextSeq(ctx, "consultations")
	if err != nil {
		failover("CreateHealthConsultation", err)
		return m.fallback.CreateHealthConsultation(ctx, consultation)
	}
	created.ID = id
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now()
	}
	created.WasDecrypted = false
	if _, err := m.db.Collection(collConsultations).InsertOne(ctx, created); err != nil {
		failover("CreateHealthConsultation", err)
		return m.fallback.CreateHealthConsultation(ctx, consultation)
	}
	return &created, nil
}

// --- doctors ---

func (m *MongoStore) GetDoctors(ctx context.Context) ([]models.Doctor, error) {
	if !m.Connected(ctx) {
		return m.fallback.GetDoctors(ctx)
	}
	var out []models.Doctor
	if err := m.findAll(ctx, collDoctors, bson.M{}, bson.D{{Key: "id", Value: 1}}, &out); err != nil {
		failover("GetDoctors", err)
		return m.fallback.GetDoctors(ctx)
	}
	if out == nil {
		out = make([]models.Doctor, 0)
	}
	return out, nil
}

func (m *MongoStore) GetDoctor(ctx context.Context, id uint) (*models.Doctor, error) {
	if !m.Connected(ctx) {
		return m.fallback.GetDoctor(ctx, id)
	}
	var d models.Doctor
	err := m.findOne(ctx, collDoctors, bson.M{"id": id}, &d)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		failover("GetDoctor", err)
		return m.fallback.GetDoctor(ctx, id)
	}
	return &d, nil
}

// doctorFilter builds the directory query. Both filters are case-insensitive
// substring matches, mirroring the in-memory backend, and the user input is
// quoted so it cannot act as a regex.
func doctorFilter(specialty, location string) bson.M {
	filter := bson.M{}
	if specialty != "" {
		filter["specialty"] = bson.M{"$regex": regexp.QuoteMeta(specialty), "$options": "i"}
	}
	if location != "" {
		filter["location"] = bson.M{"$regex": regexp.QuoteMeta(location), "$options": "i"}
	}
	return filter
}

func (m *MongoStore) FindDoctors(ctx context.Context, specialty, location string) ([]models.Doctor, error) {
	if !m.Connected(ctx) {
		return m.fallback.FindDoctors(ctx, specialty, location)
	}
	filter := doctorFilter(specialty, location)
	var out []models.Doctor
	if err := m.findAll(ctx, collDoctors, filter, bson.D{{Key: "id", Value: 1}}, &out); err != nil {
		failover("FindDoctors", err)
		return m.fallback.FindDoctors(ctx, specialty, location)
	}
	if out == nil {
		out = make([]models.Doctor, 0)
	}
	return out, nil
}

// --- push endpoints ---

func (m *MongoStore) GetPushEndpointsByUserID(ctx context.Context, userID uint) ([]models.PushEndpoint, error) {
	if !m.Connected(ctx) {
		return m.fallback.GetPushEndpointsByUserID(ctx, userID)
	}
	var out []models.PushEndpoint
	if err := m.findAll(ctx, collPushEndpoints, bson.M{"userId": userID}, bson.D{{Key: "id", Value: 1}}, &out); err != nil {
		failover("GetPushEndpointsByUserID", err)
		return m.fallback.GetPushEndpointsByUserID(ctx, userID)
	}
	if out == nil {
		out = make([]models.PushEndpoint, 0)
	}
	return out, nil
}

func (m *MongoStore) UpsertPushEndpoint(ctx context.Context, endpoint *models.PushEndpoint) (*models.PushEndpoint, error) {
	if err := validatePushEndpoint(endpoint); err != nil {
		return nil, err
	}
	if !m.Connected(ctx) {
		return m.fallback.UpsertPushEndpoint(ctx, endpoint)
	}
	now := time.Now()
	var existing models.PushEndpoint
	err := m.findOne(ctx, collPushEndpoints, bson.M{"userId": endpoint.UserID, "tokenHash": endpoint.TokenHash}, &existing)
	if err == nil {
		res := m.db.Collection(collPushEndpoints).FindOneAndUpdate(ctx,
			bson.M{"id": existing.ID},
			bson.M{"$set": bson.M{
				"endpointArn": endpoint.EndpointARN,
				"platform":    endpoint.Platform,
				"enabled":     endpoint.Enabled,
				"updatedAt":   now,
			}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		)
		var updated models.PushEndpoint
		if err := res.Decode(&updated); err != nil {
			failover("UpsertPushEndpoint", err)
			return m.fallback.UpsertPushEndpoint(ctx, endpoint)
		}
		return &updated, nil
	}
	if !errors.Is(err, ErrNotFound) {
		failover("UpsertPushEndpoint", err)
		return m.fallback.UpsertPushEndpoint(ctx, endpoint)
	}
	created := *endpoint
	id, err := m.nextSeq(ctx, "pushEndpoints")
	if err != nil {
		failover("UpsertPushEndpoint", err)
		return m.fallback.UpsertPushEndpoint(ctx, endpoint)
	}
	created.ID = id
	created.CreatedAt = now
	created.UpdatedAt = now
	if _, err := m.db.Collection(collPushEndpoints).InsertOne(ctx, created); err != nil {
		failover("UpsertPushEndpoint", err)
		return m.fallback.UpsertPushEndpoint(ctx, endpoint)
	}
	return &created, nil
}
