package ws

import "github.com/google/uuid"

// instanceID tags Redis messages so an instance skips its own publications
var instanceID = uuid.NewString()
