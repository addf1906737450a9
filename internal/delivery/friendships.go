package delivery

import (
	"log"

	"github.com/PlayHaven/PlayHaven/internal/models"
	"github.com/PlayHaven/PlayHaven/internal/repositories"
)

// friendEventPayload is the JSON body stored inside friendship notifications.
// sender_id keys the pending notification back to its edge.
type friendEventPayload struct {
	SenderID       uint   `json:"sender_id"`
	SenderUsername string `json:"sender_username"`
}

// FriendshipService runs the friend-request state machine and emits the
// notifications each transition owes.
type FriendshipService struct {
	friendships    repositories.FriendshipRepository
	users          repositories.UserRepository
	notifier       *Notifier
	notifyOnReject bool
}

func NewFriendshipService(friendships repositories.FriendshipRepository, users repositories.UserRepository, notifier *Notifier, notifyOnReject bool) *FriendshipService {
	return &FriendshipService{
		friendships:    friendships,
		users:          users,
		notifier:       notifier,
		notifyOnReject: notifyOnReject,
	}
}

// Request creates a pending edge toward the named user and notifies them
func (s *FriendshipService) Request(requesterID uint, targetUsername string) (*models.Friendship, error) {
	target, err := s.users.GetUserByUsername(targetUsername)
	if err != nil {
		return nil, err
	}
	requester, err := s.users.GetUserByID(requesterID)
	if err != nil {
		return nil, err
	}

	edge, err := s.friendships.CreateRequest(requesterID, target.ID)
	if err != nil {
		return nil, err
	}

	if _, err := s.notifier.Notify(target.ID, models.NotificationFriendRequest, friendEventPayload{
		SenderID:       requester.ID,
		SenderUsername: requester.Username,
	}); err != nil {
		log.Printf("delivery: friend request %d created but notification failed: %v", edge.ID, err)
	}
	return edge, nil
}

// Accept flips the pending edge to accepted and notifies both sides. The
// repository removes the now-stale pending notification inside the same
// transaction as the status flip.
func (s *FriendshipService) Accept(actorID, requestID uint) (*models.Friendship, error) {
	edge, err := s.friendships.AcceptRequest(requestID, actorID)
	if err != nil {
		return nil, err
	}

	requester, rerr := s.users.GetUserByID(edge.UserID)
	actor, aerr := s.users.GetUserByID(actorID)
	if rerr != nil || aerr != nil {
		log.Printf("delivery: request %d accepted but user lookup failed (%v, %v)", requestID, rerr, aerr)
		return edge, nil
	}

	if _, err := s.notifier.Notify(requester.ID, models.NotificationFriendRequestAccepted, friendEventPayload{
		SenderID:       actor.ID,
		SenderUsername: actor.Username,
	}); err != nil {
		log.Printf("delivery: accept notification to requester %d failed: %v", requester.ID, err)
	}
	if _, err := s.notifier.Notify(actor.ID, models.NotificationFriendRequestAccepted, friendEventPayload{
		SenderID:       requester.ID,
		SenderUsername: requester.Username,
	}); err != nil {
		log.Printf("delivery: accept notification to actor %d failed: %v", actor.ID, err)
	}
	return edge, nil
}

// Reject deletes the pending edge. The requester is only told when the
// deployment opts in.
func (s *FriendshipService) Reject(actorID, requestID uint) error {
	edge, err := s.friendships.RejectRequest(requestID, actorID)
	if err != nil {
		return err
	}

	if !s.notifyOnReject {
		return nil
	}
	actor, err := s.users.GetUserByID(actorID)
	if err != nil {
		log.Printf("delivery: request %d rejected but actor lookup failed: %v", requestID, err)
		return nil
	}
	if _, err := s.notifier.Notify(edge.UserID, models.NotificationFriendRequestRejected, friendEventPayload{
		SenderID:       actor.ID,
		SenderUsername: actor.Username,
	}); err != nil {
		log.Printf("delivery: reject notification to requester %d failed: %v", edge.UserID, err)
	}
	return nil
}

// Friends lists the user's accepted friends
func (s *FriendshipService) Friends(userID uint) ([]models.FriendEntry, error) {
	return s.friendships.Friends(userID)
}

// Pending lists requests waiting on the user's decision
func (s *FriendshipService) Pending(userID uint) ([]models.PendingRequestEntry, error) {
	return s.friendships.PendingRequests(userID)
}
