package mysql

const upsertHotelSQL = `
INSERT INTO hotels
  (id, name, price, rating, type, location, description)
VALUES
  (?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name        = VALUES(name),
  price       = VALUES(price),
  rating      = VALUES(rating),
  type        = VALUES(type),
  location    = VALUES(location),
  description = VALUES(description),
  updated_at  = CURRENT_TIMESTAMP
`

// Catalog order is id order; listings rely on it being stable.
const listHotelsSQL = `
SELECT id, name, price, rating, type, location, description
FROM hotels
ORDER BY id
`

const insertRecommendationSQL = `
INSERT INTO recommendation_log
  (session_id, model, prompt_hash, filters, phase, hotel_id, reasoning, raw, error, cached, latency_ms, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const listRecommendationsSQL = `
SELECT session_id, model, prompt_hash, filters, phase, hotel_id, reasoning, raw, error, cached, latency_ms, created_at
FROM recommendation_log
WHERE session_id = ?
ORDER BY created_at, id
`
