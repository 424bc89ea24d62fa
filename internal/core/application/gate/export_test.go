package gate

func (g *Gate) Offer(ev Event) {
	g.offer(delivery{event: &ev})
}
