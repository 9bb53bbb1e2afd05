package domain

import "strings"

// ActorAddress names a logical actor inside a remote instance. It is built for one send and then dropped.
type ActorAddress struct {
	ServiceName string
	HostAddress string
	ActorPath   string
}

// ActorScheme prefixes rendered actor addresses.
const ActorScheme = "mesh.grpc"

// String renders the address as "mesh.grpc://customer-actor-system@10.0.0.7:41234/user/customers-actor".
func (a ActorAddress) String() string {
	path := a.ActorPath
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return ActorScheme + "://" + a.ServiceName + "@" + a.HostAddress + path
}
