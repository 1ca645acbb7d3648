package core

import "fibernet/pkg/domain"

func connectedFibers(boxes []Box, clientID string) []ConnectedFiber {
	out := []ConnectedFiber{}
	for _, box := range boxes {
		for _, cable := range box.Cables() {
			for _, fiber := range cable.Fibers {
				if fiber.ClientID == nil || *fiber.ClientID != clientID {
					continue
				}
				out = append(out, ConnectedFiber{
					Fiber: fiber,
					Box:   domain.BoxRef{ID: box.ID, Code: box.Code},
					Cable: domain.CableRef{ID: cable.ID, Identification: cable.Identification, Side: cable.Side},
				})
			}
		}
	}
	return out
}

func connectedPorts(switches []Switch, clientID string) []ConnectedPort {
	out := []ConnectedPort{}
	for _, sw := range switches {
		for _, port := range sw.Ports {
			if port.ClientID == nil || *port.ClientID != clientID {
				continue
			}
			out = append(out, ConnectedPort{
				Port:   port,
				Switch: domain.SwitchRef{ID: sw.ID, Name: sw.Name},
			})
		}
	}
	return out
}
